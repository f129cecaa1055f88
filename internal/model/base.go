package model

// Table names of the configuration database.
const (
	TableObj       = "Obj"
	TableCommLine  = "CommLine"
	TableDevice    = "Device"
	TableInCnl     = "InCnl"
	TableOutCnl    = "OutCnl"
	TableLim       = "Lim"
	TableView      = "View"
	TableRole      = "Role"
	TableRoleRef   = "RoleRef"
	TableObjRight  = "ObjRight"
	TableUser      = "User"
	TableArchive   = "Archive"
	TableCnlStatus = "CnlStatus"
	TableCnlType   = "CnlType"
	TableCmdType   = "CmdType"
	TableDataType  = "DataType"
	TableDevType   = "DevType"
	TableFormat    = "Format"
	TableQuantity  = "Quantity"
	TableScript    = "Script"
	TableUnit      = "Unit"
	TableViewType  = "ViewType"
)

// FieldDeviceNum is the channel row field that references a device.
const FieldDeviceNum = "DeviceNum"

// Row is a configuration database record. DeviceNum is set only for rows
// bound to a device (channels).
type Row struct {
	ID        int
	Name      string
	DeviceNum *int
}

// Field returns the value of the named field and whether it is set.
func (r Row) Field(name string) (any, bool) {
	switch name {
	case "ID":
		return r.ID, true
	case "Name":
		return r.Name, true
	case FieldDeviceNum:
		if r.DeviceNum == nil {
			return nil, false
		}
		return *r.DeviceNum, true
	}
	return nil, false
}

// BaseTable is a table of the configuration database.
type BaseTable struct {
	Name  string
	Title string
	Rows  []Row
}

func (t *BaseTable) String() string { return t.Title }

// ConfigBase is the configuration database of a project.
type ConfigBase struct {
	tables map[string]*BaseTable
	order  []string
}

var tableTitles = []struct{ name, title string }{
	{TableObj, "Objects"},
	{TableCommLine, "Communication Lines"},
	{TableDevice, "Devices"},
	{TableInCnl, "Input Channels"},
	{TableOutCnl, "Output Channels"},
	{TableLim, "Limits"},
	{TableView, "Views"},
	{TableRole, "Roles"},
	{TableRoleRef, "Role Inheritance"},
	{TableObjRight, "Object Rights"},
	{TableUser, "Users"},
	{TableArchive, "Archives"},
	{TableCnlStatus, "Channel Statuses"},
	{TableCnlType, "Channel Types"},
	{TableCmdType, "Command Types"},
	{TableDataType, "Data Types"},
	{TableDevType, "Device Types"},
	{TableFormat, "Formats"},
	{TableQuantity, "Quantities"},
	{TableScript, "Scripts"},
	{TableUnit, "Units"},
	{TableViewType, "View Types"},
}

func NewConfigBase() *ConfigBase {
	cb := &ConfigBase{tables: map[string]*BaseTable{}}
	for _, tt := range tableTitles {
		cb.tables[tt.name] = &BaseTable{Name: tt.name, Title: tt.title}
		cb.order = append(cb.order, tt.name)
	}
	return cb
}

func (cb *ConfigBase) String() string { return "Configuration Database" }

// Table returns the table with the given name or nil.
func (cb *ConfigBase) Table(name string) *BaseTable { return cb.tables[name] }

// AllTables returns every table in definition order.
func (cb *ConfigBase) AllTables() []*BaseTable {
	out := make([]*BaseTable, 0, len(cb.order))
	for _, n := range cb.order {
		out = append(out, cb.tables[n])
	}
	return out
}

// Device is a row of the device table.
type Device struct {
	DeviceNum int
	Name      string
}

// Devices returns the device table rows in table order.
func (cb *ConfigBase) Devices() []Device {
	t := cb.Table(TableDevice)
	out := make([]Device, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, Device{DeviceNum: r.ID, Name: r.Name})
	}
	return out
}
