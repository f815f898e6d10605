package vsphere

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmware/govmomi/simulator"
	"github.com/vmware/govmomi/vim25"
)

func TestListVirtualMachines(t *testing.T) {
	simulator.Test(func(ctx context.Context, vc *vim25.Client) {
		client := NewFromVim25(vc)

		vms, err := client.ListVirtualMachines(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, vms)

		for _, vm := range vms {
			assert.NotEmpty(t, vm.Summary.Config.Name)
			assert.NotEmpty(t, vm.Summary.Runtime.PowerState)
		}
	})
}

func TestListHosts(t *testing.T) {
	simulator.Test(func(ctx context.Context, vc *vim25.Client) {
		client := NewFromVim25(vc)

		hosts, err := client.ListHosts(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, hosts)

		for _, host := range hosts {
			assert.NotEmpty(t, host.Summary.Config.Name)
		}
	})
}

func TestListDatastores(t *testing.T) {
	simulator.Test(func(ctx context.Context, vc *vim25.Client) {
		client := NewFromVim25(vc)

		datastores, err := client.ListDatastores(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, datastores)

		for _, datastore := range datastores {
			assert.NotEmpty(t, datastore.Summary.Name)
		}
	})
}

func TestCloseWithoutOwnedSession(t *testing.T) {
	client := NewFromVim25(nil)
	assert.NoError(t, client.Close(context.Background()))
}
