// Package snapshot defines the exported view of the whole world and how it
// is encoded and written out.
package snapshot

import (
	"github.com/pixil98/go-grim/internal/audio"
	"github.com/pixil98/go-grim/internal/cutscene"
	"github.com/pixil98/go-grim/internal/game"
	"github.com/pixil98/go-grim/internal/scheduler"
)

// Document is a point in time copy of the world. Maps are keyed by stable
// ids and lists keep definition order, so encoding is deterministic.
type Document struct {
	CurrentSet     *CurrentSet                 `json:"current_set"`
	SelectedActor  *string                     `json:"selected_actor"`
	VoiceEffect    *string                     `json:"voice_effect"`
	LoadedSets     []string                    `json:"loaded_sets"`
	CurrentSetups  map[string]SetupSelection   `json:"current_setups"`
	Sets           []Set                       `json:"sets"`
	Actors         map[string]*game.Actor      `json:"actors"`
	Objects        []Object                    `json:"objects"`
	VisibleObjects []game.VisibleObject        `json:"visible_objects"`
	HotlistHandles []int                       `json:"hotlist_handles"`
	Inventory      []string                    `json:"inventory"`
	InventoryRooms []string                    `json:"inventory_rooms"`
	Achievements   map[string]game.Achievement `json:"achievements"`
	Commentary     *cutscene.Commentary        `json:"commentary"`
	CutScenes      []cutscene.Record           `json:"cut_scenes"`
	Overrides      []string                    `json:"overrides"`
	Dialog         *cutscene.Dialog            `json:"dialog"`
	Movie          *cutscene.Movie             `json:"fullscreen_movie"`
	Music          audio.Music                 `json:"music"`
	Sfx            audio.Sfx                   `json:"sfx"`
	Scripts        []scheduler.Info            `json:"scripts"`
	Paused         game.PauseState             `json:"paused"`
	Menus          map[string]game.MenuState   `json:"menus"`
	Events         []string                    `json:"events"`
}

type CurrentSet struct {
	SetFile      string          `json:"set_file"`
	VariableName string          `json:"variable_name"`
	DisplayName  *string         `json:"display_name"`
	Selection    *SetupSelection `json:"selection"`
}

type SetupSelection struct {
	Index int     `json:"index"`
	Label *string `json:"label"`
}

type Set struct {
	SetFile       string          `json:"set_file"`
	VariableName  *string         `json:"variable_name"`
	DisplayName   *string         `json:"display_name"`
	HasGeometry   bool            `json:"has_geometry"`
	CurrentSetup  *SetupSelection `json:"current_setup"`
	Setups        []Setup         `json:"setups"`
	Sectors       []Sector        `json:"sectors"`
	ActiveSectors map[string]bool `json:"active_sectors"`
}

type Setup struct {
	Name     string      `json:"name"`
	Interest *[2]float64 `json:"interest"`
	Position *[2]float64 `json:"position"`
}

type Sector struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	Kind          string       `json:"kind"`
	DefaultActive bool         `json:"default_active"`
	Active        bool         `json:"active"`
	Vertices      [][2]float64 `json:"vertices"`
	Centroid      [2]float64   `json:"centroid"`
}

type Object struct {
	Handle         int            `json:"handle"`
	Name           string         `json:"name"`
	StringName     *string        `json:"string_name"`
	SetFile        *string        `json:"set_file"`
	Position       *game.Vec3     `json:"position"`
	Range          float64        `json:"range"`
	Touchable      bool           `json:"touchable"`
	Visible        bool           `json:"visible"`
	InterestActor  *ActorLink     `json:"interest_actor"`
	Sectors        []ObjectSector `json:"sectors"`
	InActiveSector *bool          `json:"in_active_sector"`
}

type ActorLink struct {
	Handle     int     `json:"handle"`
	ActorID    *string `json:"actor_id"`
	ActorLabel *string `json:"actor_label"`
}

type ObjectSector struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}
