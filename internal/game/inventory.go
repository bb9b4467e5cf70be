package game

import (
	"maps"
	"slices"
)

// AddInventoryItem adds an item and reports whether it was new.
func (w *WorldState) AddInventoryItem(name string) bool {
	if w.inventory[name] {
		return false
	}
	w.inventory[name] = true
	w.log("inventory.add %s", name)
	return true
}

func (w *WorldState) RegisterInventoryRoom(name string) bool {
	if w.rooms[name] {
		return false
	}
	w.rooms[name] = true
	w.log("inventory.room %s", name)
	return true
}

func (w *WorldState) Inventory() []string {
	return slices.Sorted(maps.Keys(w.inventory))
}

func (w *WorldState) InventoryRooms() []string {
	return slices.Sorted(maps.Keys(w.rooms))
}
