package audio

// FootstepProfile is the sound prefix for one walking surface and how many
// variants exist per foot and gait. Zero run counts mean the surface has no
// running sounds.
type FootstepProfile struct {
	Prefix    string
	LeftWalk  int
	RightWalk int
	LeftRun   int
	RightRun  int
}

// Footsteps maps surface names to their footstep sounds.
var Footsteps = map[string]FootstepProfile{
	"concrete":    {Prefix: "fscon", LeftWalk: 4, RightWalk: 4, LeftRun: 4, RightRun: 4},
	"dirt":        {Prefix: "fsdrt", LeftWalk: 4, RightWalk: 4, LeftRun: 4, RightRun: 4},
	"gravel":      {Prefix: "fsgrv", LeftWalk: 4, RightWalk: 4, LeftRun: 4, RightRun: 4},
	"creak":       {Prefix: "fscrk", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"marble":      {Prefix: "fsmar", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"metal":       {Prefix: "fsmet", LeftWalk: 4, RightWalk: 4, LeftRun: 4, RightRun: 4},
	"pavement":    {Prefix: "fspav", LeftWalk: 4, RightWalk: 4, LeftRun: 4, RightRun: 4},
	"rug":         {Prefix: "fsrug", LeftWalk: 4, RightWalk: 4, LeftRun: 4, RightRun: 4},
	"sand":        {Prefix: "fssnd", LeftWalk: 4, RightWalk: 4, LeftRun: 4, RightRun: 4},
	"snow":        {Prefix: "fssno", LeftWalk: 4, RightWalk: 4, LeftRun: 4, RightRun: 4},
	"trapdoor":    {Prefix: "fstrp", LeftWalk: 1, RightWalk: 1, LeftRun: 1, RightRun: 1},
	"echo":        {Prefix: "fseko", LeftWalk: 4, RightWalk: 4, LeftRun: 4, RightRun: 4},
	"reverb":      {Prefix: "fsrvb", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"metal2":      {Prefix: "fs3mt", LeftWalk: 4, RightWalk: 4, LeftRun: 2, RightRun: 2},
	"wet":         {Prefix: "fswet", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"flowers":     {Prefix: "fsflw", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"glottis":     {Prefix: "fsglt", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"bone":        {Prefix: "fsbon", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"wood":        {Prefix: "fswd1", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"wood2":       {Prefix: "fswd2", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"wood3":       {Prefix: "fswd3", LeftWalk: 3, RightWalk: 3, LeftRun: 3, RightRun: 3},
	"wood4":       {Prefix: "fswd4", LeftWalk: 3, RightWalk: 3, LeftRun: 3, RightRun: 3},
	"wood5":       {Prefix: "fswd5", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"wood6":       {Prefix: "fswd6", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"water":       {Prefix: "fswat", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"mud":         {Prefix: "fsmud", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"clay":        {Prefix: "fscla", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"slime":       {Prefix: "fsslm", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"slush":       {Prefix: "fsslh", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"velvet":      {Prefix: "fsvlv", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"ivy":         {Prefix: "fsivy", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"leaves":      {Prefix: "fslea", LeftWalk: 3, RightWalk: 3, LeftRun: 3, RightRun: 3},
	"carpet":      {Prefix: "fscpt", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"vinyl":       {Prefix: "fsvin", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"catwalk":     {Prefix: "fscat", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"steam":       {Prefix: "fsstm", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"stump":       {Prefix: "fsstp", LeftWalk: 1, RightWalk: 1, LeftRun: 1, RightRun: 1},
	"shell":       {Prefix: "fsshl", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"guard":       {Prefix: "fsgua", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"paper":       {Prefix: "fspap", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"cardboard":   {Prefix: "fscbx", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"tarp":        {Prefix: "fstrp", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"metal3":      {Prefix: "fsmt3", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"metal4":      {Prefix: "fsmt4", LeftWalk: 2, RightWalk: 2, LeftRun: 2, RightRun: 2},
	"nick_virago": {Prefix: "fsnic", LeftWalk: 2, RightWalk: 2, LeftRun: 0, RightRun: 0},
	"underwater":  {Prefix: "fswtr", LeftWalk: 3, RightWalk: 3, LeftRun: 2, RightRun: 2},
	"velasco":     {Prefix: "fsbcn", LeftWalk: 3, RightWalk: 2, LeftRun: 0, RightRun: 0},
	"jello":       {Prefix: "fsjll", LeftWalk: 2, RightWalk: 2, LeftRun: 0, RightRun: 0},
}
