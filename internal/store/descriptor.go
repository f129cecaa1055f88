package store

import (
	"errors"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wcy168/scada-v6/internal/model"
)

// descriptor is the on-disk shape of project.yaml. Directories are stored
// relative to the project directory.
type descriptor struct {
	Version   int                  `yaml:"version"`
	Name      string               `yaml:"name"`
	Views     string               `yaml:"views"`
	Instances []instanceDescriptor `yaml:"instances"`
}

type instanceDescriptor struct {
	Name   string         `yaml:"name"`
	Server appDescriptor  `yaml:"server"`
	Comm   commDescriptor `yaml:"comm"`
	Web    appDescriptor  `yaml:"web"`
}

type appDescriptor struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir,omitempty"`
}

type commDescriptor struct {
	Enabled bool             `yaml:"enabled"`
	Dir     string           `yaml:"dir,omitempty"`
	Lines   []lineDescriptor `yaml:"lines,omitempty"`
}

type lineDescriptor struct {
	Num     int                `yaml:"num"`
	Name    string             `yaml:"name"`
	Devices []deviceDescriptor `yaml:"devices,omitempty"`
}

type deviceDescriptor struct {
	Num  int    `yaml:"num"`
	Name string `yaml:"name"`
}

func decodeDescriptor(b []byte, dir string) (*model.Project, error) {
	var d descriptor
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	if strings.TrimSpace(d.Name) == "" {
		return nil, errors.New("missing project name")
	}
	p := model.NewProject(d.Name)
	p.Dir = dir
	views := d.Views
	if views == "" {
		views = "Views"
	}
	p.Views.Dir = resolve(dir, views)

	seen := map[string]bool{}
	for _, id := range d.Instances {
		if seen[id.Name] {
			return nil, errors.New("duplicate instance " + id.Name)
		}
		seen[id.Name] = true
		inst := model.NewInstance(id.Name)
		inst.Server.Enabled = id.Server.Enabled
		inst.Server.Dir = resolve(dir, id.Server.Dir)
		inst.Web.Enabled = id.Web.Enabled
		inst.Web.Dir = resolve(dir, id.Web.Dir)
		inst.Comm.Enabled = id.Comm.Enabled
		inst.Comm.Dir = resolve(dir, id.Comm.Dir)
		for _, ld := range id.Comm.Lines {
			line := model.NewCommLine(ld.Num, ld.Name)
			for _, dd := range ld.Devices {
				line.AddDevice(model.NewCommDevice(dd.Num, dd.Name))
			}
			inst.Comm.AddLine(line)
		}
		p.Instances.Append(inst)
	}
	return p, nil
}

func encodeDescriptor(p *model.Project, dir string) ([]byte, error) {
	d := descriptor{
		Version: 1,
		Name:    p.Name,
		Views:   relative(dir, p.Views.Dir),
	}
	for _, inst := range p.Instances.Items() {
		id := instanceDescriptor{
			Name:   inst.Name,
			Server: appDescriptor{Enabled: inst.Server.Enabled, Dir: relative(dir, inst.Server.Dir)},
			Web:    appDescriptor{Enabled: inst.Web.Enabled, Dir: relative(dir, inst.Web.Dir)},
			Comm:   commDescriptor{Enabled: inst.Comm.Enabled, Dir: relative(dir, inst.Comm.Dir)},
		}
		for _, line := range inst.Comm.Lines.Items() {
			ld := lineDescriptor{Num: line.Num, Name: line.Name}
			for _, dev := range line.Devices.Items() {
				ld.Devices = append(ld.Devices, deviceDescriptor{Num: dev.Num, Name: dev.Name})
			}
			id.Comm.Lines = append(id.Comm.Lines, ld)
		}
		d.Instances = append(d.Instances, id)
	}
	return yaml.Marshal(&d)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, filepath.FromSlash(p))
}

func relative(base, p string) string {
	if p == "" || base == "" {
		return p
	}
	rel, err := filepath.Rel(base, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}
