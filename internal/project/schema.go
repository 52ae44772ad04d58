package project

// File is the decoded project document.
type File struct {
	Name      string         `toml:"name" yaml:"name"`
	Jumppad   bool           `toml:"jumppad" yaml:"jumppad"`
	VMGM      *VMGMSpec      `toml:"vmgm" yaml:"vmgm"`
	Titlesets []TitlesetSpec `toml:"titlesets" yaml:"titlesets"`
	Detached  DetachedSpec   `toml:"detached" yaml:"detached"`
}

// VMGMSpec describes the video manager menus.
type VMGMSpec struct {
	Key             string      `toml:"key" yaml:"key"`
	Name            string      `toml:"name" yaml:"name"`
	SubpictureLangs []string    `toml:"subpicture_langs" yaml:"subpicture_langs"`
	Menus           []MenuSpec  `toml:"menus" yaml:"menus"`
	Titles          []TitleSpec `toml:"titles" yaml:"titles"`
}

// TitlesetSpec describes one titleset.
type TitlesetSpec struct {
	Key        string      `toml:"key" yaml:"key"`
	Name       string      `toml:"name" yaml:"name"`
	AudioLangs []string    `toml:"audio_langs" yaml:"audio_langs"`
	Menus      []MenuSpec  `toml:"menus" yaml:"menus"`
	Titles     []TitleSpec `toml:"titles" yaml:"titles"`
}

// DetachedSpec lists nodes that are built but not attached.
type DetachedSpec struct {
	Menus  []MenuSpec  `toml:"menus" yaml:"menus"`
	Titles []TitleSpec `toml:"titles" yaml:"titles"`
}

// TitleSpec describes a title.
type TitleSpec struct {
	Key    string      `toml:"key" yaml:"key"`
	Name   string      `toml:"name" yaml:"name"`
	Pause  string      `toml:"pause" yaml:"pause"`
	Pre    string      `toml:"pre" yaml:"pre"`
	Post   string      `toml:"post" yaml:"post"`
	Videos []VideoSpec `toml:"videos" yaml:"videos"`
	Cells  []CellSpec  `toml:"cells" yaml:"cells"`
}

// MenuSpec describes a menu.
type MenuSpec struct {
	TitleSpec `toml:",inline" yaml:",inline"`
	Entry     string       `toml:"entry" yaml:"entry"`
	Buttons   []ButtonSpec `toml:"buttons" yaml:"buttons"`
}

// VideoSpec names one video file directly or a set of files by glob.
type VideoSpec struct {
	File     string `toml:"file" yaml:"file"`
	Glob     string `toml:"glob" yaml:"glob"`
	Chapters string `toml:"chapters" yaml:"chapters"`
	Pause    string `toml:"pause" yaml:"pause"`
}

// CellSpec describes a cell.
type CellSpec struct {
	Start   string `toml:"start" yaml:"start"`
	End     string `toml:"end" yaml:"end"`
	Chapter bool   `toml:"chapter" yaml:"chapter"`
	Program bool   `toml:"program" yaml:"program"`
	Pause   string `toml:"pause" yaml:"pause"`
}

// ButtonSpec describes a button; Name is optional.
type ButtonSpec struct {
	Name     string `toml:"name" yaml:"name"`
	Commands string `toml:"commands" yaml:"commands"`
}
