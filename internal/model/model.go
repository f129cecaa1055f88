package model

import "fmt"

// Project is the root of a SCADA configuration project.
type Project struct {
	Name       string
	Dir        string
	ConfigBase *ConfigBase
	Views      *ProjectViews
	Instances  *List[*Instance]
}

func NewProject(name string) *Project {
	return &Project{
		Name:       name,
		ConfigBase: NewConfigBase(),
		Views:      &ProjectViews{},
		Instances:  NewList[*Instance](),
	}
}

func (p *Project) String() string { return p.Name }

// FindInstance returns the instance with the given name.
func (p *Project) FindInstance(name string) (*Instance, bool) {
	for _, inst := range p.Instances.Items() {
		if inst.Name == name {
			return inst, true
		}
	}
	return nil, false
}

// ProjectViews is the directory holding view files.
type ProjectViews struct {
	Dir string
}

func (v *ProjectViews) String() string { return "Views" }

// Instance is a deployed copy of the SCADA applications.
type Instance struct {
	Name   string
	Server *App
	Comm   *CommApp
	Web    *App
}

func NewInstance(name string) *Instance {
	return &Instance{
		Name:   name,
		Server: &App{Kind: AppServer},
		Comm:   &CommApp{Lines: NewList[*CommLine]()},
		Web:    &App{Kind: AppWeb},
	}
}

func (i *Instance) String() string { return i.Name }

type AppKind string

const (
	AppServer AppKind = "server"
	AppComm   AppKind = "comm"
	AppWeb    AppKind = "web"
)

// App is an application of an instance whose content lives in a directory.
type App struct {
	Kind    AppKind
	Enabled bool
	Dir     string
}

func (a *App) String() string { return string(a.Kind) }

// CommApp is the Communicator application. Its lines and their devices are
// tree-capable: each knows its parent and keeps an ordered child collection.
type CommApp struct {
	Enabled bool
	Dir     string
	Lines   *List[*CommLine]
}

func (c *CommApp) String() string { return string(AppComm) }

func (c *CommApp) TreeParent() TreeObject   { return nil }
func (c *CommApp) SetTreeParent(TreeObject) {}
func (c *CommApp) TreeChildren() Collection { return c.Lines }
func (c *CommApp) TreeKind() string         { return "comm-app" }
func (c *CommApp) AddLine(l *CommLine)      { l.parent = c; c.Lines.Append(l) }

// FindLine returns the line with the given number.
func (c *CommApp) FindLine(num int) (*CommLine, bool) {
	for _, l := range c.Lines.Items() {
		if l.Num == num {
			return l, true
		}
	}
	return nil, false
}

// FindDevice returns the device with the given number on any line.
func (c *CommApp) FindDevice(num int) (*CommDevice, bool) {
	for _, l := range c.Lines.Items() {
		for _, d := range l.Devices.Items() {
			if d.Num == num {
				return d, true
			}
		}
	}
	return nil, false
}

// CommLine is a communication line polled by the Communicator.
type CommLine struct {
	Num     int
	Name    string
	Devices *List[*CommDevice]

	parent TreeObject
}

func NewCommLine(num int, name string) *CommLine {
	return &CommLine{Num: num, Name: name, Devices: NewList[*CommDevice]()}
}

func (l *CommLine) String() string { return fmt.Sprintf("Line %d - %s", l.Num, l.Name) }

func (l *CommLine) TreeParent() TreeObject     { return l.parent }
func (l *CommLine) SetTreeParent(p TreeObject) { l.parent = p }
func (l *CommLine) TreeChildren() Collection   { return l.Devices }
func (l *CommLine) TreeKind() string           { return "comm-line" }
func (l *CommLine) AddDevice(d *CommDevice)    { d.parent = l; l.Devices.Append(d) }

// CommDevice is a device polled on a communication line.
type CommDevice struct {
	Num  int
	Name string

	parent TreeObject
}

func NewCommDevice(num int, name string) *CommDevice {
	return &CommDevice{Num: num, Name: name}
}

func (d *CommDevice) String() string { return fmt.Sprintf("[%d] %s", d.Num, d.Name) }

func (d *CommDevice) TreeParent() TreeObject     { return d.parent }
func (d *CommDevice) SetTreeParent(p TreeObject) { d.parent = p }
func (d *CommDevice) TreeChildren() Collection   { return nil }
func (d *CommDevice) TreeKind() string           { return "comm-device" }

// Line returns the line the device currently belongs to.
func (d *CommDevice) Line() *CommLine {
	l, _ := d.parent.(*CommLine)
	return l
}
