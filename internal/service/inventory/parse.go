package inventory

import (
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/mbaye/vsphere-inventory/internal/domain/models"
)

// noneValue is what consumers receive for optional fields the API left
// unset, so every emitted document carries the full key set.
const noneValue = "None"

// ParseVirtualMachine normalizes one virtual machine managed object into
// the asset document emitted downstream.
func ParseVirtualMachine(vm mo.VirtualMachine) models.VirtualMachineAsset {
	summary := vm.Summary

	asset := models.VirtualMachineAsset{
		Name:         summary.Config.Name,
		Template:     summary.Config.Template,
		Path:         summary.Config.VmPathName,
		Guest:        summary.Config.GuestFullName,
		InstanceUUID: summary.Config.InstanceUuid,
		BiosUUID:     summary.Config.Uuid,
		Annotation:   summary.Config.Annotation,
		PowerState:   string(summary.Runtime.PowerState),
		GuestIP:      noneValue,
		ToolsStatus:  noneValue,
	}

	if asset.Annotation == "" {
		asset.Annotation = noneValue
	}

	if summary.Guest != nil {
		if summary.Guest.IpAddress != "" {
			asset.GuestIP = summary.Guest.IpAddress
		}
		if summary.Guest.ToolsStatus != "" {
			asset.ToolsStatus = string(summary.Guest.ToolsStatus)
		}
	}

	if summary.Runtime.Question != nil {
		asset.RuntimeQuestion = summary.Runtime.Question.Text
	}

	if product := summary.Config.Product; product != nil {
		asset.ProductName = product.Name
		asset.ProductVendor = product.Vendor
	}

	asset.NetworkAdapters = parseNetworkAdapters(vm)

	return asset
}

// parseNetworkAdapters extracts every virtual ethernet card from the
// machine's hardware device list.
func parseNetworkAdapters(vm mo.VirtualMachine) []models.NetworkAdapter {
	adapters := []models.NetworkAdapter{}

	if vm.Config == nil {
		return adapters
	}

	for _, device := range vm.Config.Hardware.Device {
		card, ok := device.(types.BaseVirtualEthernetCard)
		if !ok {
			continue
		}

		ethernet := card.GetVirtualEthernetCard()

		adapter := models.NetworkAdapter{MacAddress: ethernet.MacAddress}
		if ethernet.DeviceInfo != nil {
			adapter.Label = ethernet.DeviceInfo.GetDescription().Label
		}

		adapters = append(adapters, adapter)
	}

	return adapters
}

// ParseHost normalizes one host system managed object.
func ParseHost(host mo.HostSystem) models.HostAsset {
	summary := host.Summary

	asset := models.HostAsset{
		Name: summary.Config.Name,
	}

	if runtime := summary.Runtime; runtime != nil {
		asset.PowerState = string(runtime.PowerState)
		asset.ConnectionState = string(runtime.ConnectionState)
	}

	if hardware := summary.Hardware; hardware != nil {
		asset.Vendor = hardware.Vendor
		asset.Model = hardware.Model
		asset.UUID = hardware.Uuid
		asset.NumCPUCores = hardware.NumCpuCores
		asset.CPUMhz = hardware.CpuMhz
		asset.MemoryBytes = hardware.MemorySize
	}

	if product := summary.Config.Product; product != nil {
		asset.Product = product.FullName
	}

	return asset
}

// ParseDatastore normalizes one datastore managed object.
func ParseDatastore(datastore mo.Datastore) models.DatastoreAsset {
	summary := datastore.Summary

	return models.DatastoreAsset{
		Name:           summary.Name,
		Type:           summary.Type,
		URL:            summary.Url,
		CapacityBytes:  summary.Capacity,
		FreeSpaceBytes: summary.FreeSpace,
		Accessible:     summary.Accessible,
	}
}
