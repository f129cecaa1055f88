package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/wcy168/scada-v6/internal/model"
)

// ErrProjectExists is returned by Scaffold when dir already holds a project.
var ErrProjectExists = errors.New("project already exists")

var sampleViews = map[string]string{
	"Overview.sch":        "<SchemeView/>\n",
	"Station/Pumps.sch":   "<SchemeView/>\n",
	"Station/Tables.tbl":  "<TableView/>\n",
	"Reports/README.md":   "# Reports\n\nDrop report templates here.\n",
	"Reports/Daily/.keep": "",
}

var sampleWeb = map[string]string{
	"config/ScadaWebConfig.xml": "<ScadaWebConfig/>\n",
	"plugins/README.md":         "# Plugins\n\nOne directory per plugin.\n",
}

// Scaffold creates a sample project in the store directory: descriptor,
// view files and per-instance application directories. The configuration
// database is returned filled but not saved; call SaveBase for that.
func (s Store) Scaffold(name string) (*model.Project, error) {
	if s.Exists() {
		return nil, fmt.Errorf("%s: %w", s.Dir, ErrProjectExists)
	}
	fsys := s.fs()
	p := SampleProject(name, s.Dir)

	for rel, content := range sampleViews {
		if err := writeSample(fsys, filepath.Join(p.Views.Dir, filepath.FromSlash(rel)), content); err != nil {
			return nil, err
		}
	}
	for _, inst := range p.Instances.Items() {
		for _, dir := range []string{inst.Server.Dir, inst.Comm.Dir, inst.Web.Dir} {
			if err := fsys.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		if !inst.Web.Enabled {
			continue
		}
		for rel, content := range sampleWeb {
			if err := writeSample(fsys, filepath.Join(inst.Web.Dir, filepath.FromSlash(rel)), content); err != nil {
				return nil, err
			}
		}
	}
	if err := s.SaveDescriptor(p); err != nil {
		return nil, err
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	s.log().WithField("dir", s.Dir).Info("project scaffolded")
	return p, nil
}

func writeSample(fsys afero.Fs, path, content string) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, path, []byte(content), 0o644)
}

// SampleProject returns the in-memory sample project rooted at dir.
func SampleProject(name, dir string) *model.Project {
	if name == "" {
		name = "NewProject"
	}
	p := model.NewProject(name)
	p.Dir = dir
	p.Views.Dir = filepath.Join(dir, "Views")

	dev := func(n int) *int { return &n }
	cb := p.ConfigBase
	cb.Table(model.TableObj).Rows = []model.Row{{ID: 1, Name: "Station"}}
	cb.Table(model.TableCommLine).Rows = []model.Row{{ID: 1, Name: "Modbus RTU"}, {ID: 2, Name: "Simulator"}}
	cb.Table(model.TableDevice).Rows = []model.Row{
		{ID: 1, Name: "Energy Meter"},
		{ID: 2, Name: "Pump Controller"},
		{ID: 3, Name: "Simulator"},
	}
	cb.Table(model.TableInCnl).Rows = []model.Row{
		{ID: 101, Name: "Active Energy", DeviceNum: dev(1)},
		{ID: 102, Name: "Reactive Energy", DeviceNum: dev(1)},
		{ID: 201, Name: "Pump Running", DeviceNum: dev(2)},
		{ID: 202, Name: "Pump Pressure", DeviceNum: dev(2)},
		{ID: 301, Name: "Sine", DeviceNum: dev(3)},
		{ID: 901, Name: "Calculated Total"},
	}
	cb.Table(model.TableOutCnl).Rows = []model.Row{
		{ID: 201, Name: "Pump Start", DeviceNum: dev(2)},
		{ID: 901, Name: "Reset Totals"},
	}
	cb.Table(model.TableUser).Rows = []model.Row{{ID: 1, Name: "admin"}}
	cb.Table(model.TableUnit).Rows = []model.Row{{ID: 1, Name: "kWh"}, {ID: 2, Name: "bar"}}

	def := model.NewInstance("Default")
	instDir := filepath.Join(dir, "Instances", "Default")
	def.Server.Enabled = true
	def.Server.Dir = filepath.Join(instDir, "ScadaServer")
	def.Comm.Enabled = true
	def.Comm.Dir = filepath.Join(instDir, "ScadaComm")
	def.Web.Enabled = true
	def.Web.Dir = filepath.Join(instDir, "ScadaWeb")
	modbus := model.NewCommLine(1, "Modbus RTU")
	modbus.AddDevice(model.NewCommDevice(1, "Energy Meter"))
	modbus.AddDevice(model.NewCommDevice(2, "Pump Controller"))
	sim := model.NewCommLine(2, "Simulator")
	sim.AddDevice(model.NewCommDevice(3, "Simulator"))
	def.Comm.AddLine(modbus)
	def.Comm.AddLine(sim)
	p.Instances.Append(def)

	standby := model.NewInstance("Standby")
	standbyDir := filepath.Join(dir, "Instances", "Standby")
	standby.Server.Enabled = true
	standby.Server.Dir = filepath.Join(standbyDir, "ScadaServer")
	standby.Comm.Dir = filepath.Join(standbyDir, "ScadaComm")
	standby.Web.Dir = filepath.Join(standbyDir, "ScadaWeb")
	p.Instances.Append(standby)
	return p
}
