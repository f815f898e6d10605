package models

// NetworkAdapter describes one virtual ethernet card attached to a
// virtual machine.
type NetworkAdapter struct {
	MacAddress string `bson:"mac_address" json:"mac_address"`
	Label      string `bson:"label" json:"label"`
}

// VirtualMachineAsset is the normalized document emitted for each virtual
// machine found in the inventory. String fields that the API may leave
// unset carry the literal "None" so downstream consumers always see a
// value for every key.
type VirtualMachineAsset struct {
	Name            string           `bson:"name" json:"name"`
	Template        bool             `bson:"template" json:"template"`
	Path            string           `bson:"path" json:"path"`
	Guest           string           `bson:"guest" json:"guest"`
	InstanceUUID    string           `bson:"instance_uuid" json:"instance_uuid"`
	BiosUUID        string           `bson:"bios_uuid" json:"bios_uuid"`
	Annotation      string           `bson:"annotation" json:"annotation"`
	PowerState      string           `bson:"power_state" json:"power_state"`
	GuestIP         string           `bson:"guest_ip" json:"guest_ip"`
	ToolsStatus     string           `bson:"tools_status" json:"tools_status"`
	RuntimeQuestion string           `bson:"runtime_question,omitempty" json:"runtime_question,omitempty"`
	ProductName     string           `bson:"product_name,omitempty" json:"product_name,omitempty"`
	ProductVendor   string           `bson:"product_vendor,omitempty" json:"product_vendor,omitempty"`
	NetworkAdapters []NetworkAdapter `bson:"network_adapters" json:"network_adapters"`
}

// HostAsset is the normalized document for an ESXi host.
type HostAsset struct {
	Name            string `bson:"name" json:"name"`
	Vendor          string `bson:"vendor" json:"vendor"`
	Model           string `bson:"model" json:"model"`
	UUID            string `bson:"uuid" json:"uuid"`
	NumCPUCores     int16  `bson:"num_cpu_cores" json:"num_cpu_cores"`
	CPUMhz          int32  `bson:"cpu_mhz" json:"cpu_mhz"`
	MemoryBytes     int64  `bson:"memory_bytes" json:"memory_bytes"`
	PowerState      string `bson:"power_state" json:"power_state"`
	ConnectionState string `bson:"connection_state" json:"connection_state"`
	Product         string `bson:"product,omitempty" json:"product,omitempty"`
}

// DatastoreAsset is the normalized document for a datastore.
type DatastoreAsset struct {
	Name           string `bson:"name" json:"name"`
	Type           string `bson:"type" json:"type"`
	URL            string `bson:"url" json:"url"`
	CapacityBytes  int64  `bson:"capacity_bytes" json:"capacity_bytes"`
	FreeSpaceBytes int64  `bson:"free_space_bytes" json:"free_space_bytes"`
	Accessible     bool   `bson:"accessible" json:"accessible"`
}
