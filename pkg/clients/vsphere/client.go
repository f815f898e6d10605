package vsphere

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/view"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/soap"

	"github.com/mbaye/vsphere-inventory/internal/config"
)

// Client wraps an authenticated session against a vCenter or ESXi SDK
// endpoint and exposes the enumeration operations the collector needs.
type Client struct {
	vim    *vim25.Client
	logout func(context.Context) error
}

// Connect establishes an authenticated session using the provided
// configuration. The caller owns the session and must Close it.
func Connect(ctx context.Context, cfg config.VSphereConfig) (*Client, error) {
	u, err := soap.ParseURL(fmt.Sprintf("https://%s:%d/sdk", cfg.Host, cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("parse vsphere endpoint: %w", err)
	}
	u.User = url.UserPassword(cfg.Username, cfg.Password)

	gc, err := govmomi.NewClient(ctx, u, cfg.Insecure)
	if err != nil {
		return nil, fmt.Errorf("connect to vcenter %s: %w", cfg.Host, err)
	}

	return &Client{
		vim: gc.Client,
		logout: func(ctx context.Context) error {
			return gc.Logout(ctx)
		},
	}, nil
}

// NewFromVim25 wraps an already established vim25 session. Sessions created
// this way are not owned by the client and Close is a no-op; this is how
// the simulator-backed tests construct a client.
func NewFromVim25(vc *vim25.Client) *Client {
	return &Client{vim: vc}
}

// Close terminates the session if this client owns one.
func (c *Client) Close(ctx context.Context) error {
	if c.logout == nil {
		return nil
	}
	return c.logout(ctx)
}

// ListVirtualMachines retrieves every virtual machine reachable from the
// root folder, with the summary and hardware device list needed for
// normalization.
func (c *Client) ListVirtualMachines(ctx context.Context) ([]mo.VirtualMachine, error) {
	var vms []mo.VirtualMachine
	props := []string{"summary", "config.hardware.device"}
	if err := c.retrieve(ctx, "VirtualMachine", props, &vms); err != nil {
		return nil, fmt.Errorf("list virtual machines: %w", err)
	}
	return vms, nil
}

// ListHosts retrieves every host system reachable from the root folder.
func (c *Client) ListHosts(ctx context.Context) ([]mo.HostSystem, error) {
	var hosts []mo.HostSystem
	if err := c.retrieve(ctx, "HostSystem", []string{"summary"}, &hosts); err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}
	return hosts, nil
}

// ListDatastores retrieves every datastore reachable from the root folder.
func (c *Client) ListDatastores(ctx context.Context) ([]mo.Datastore, error) {
	var datastores []mo.Datastore
	if err := c.retrieve(ctx, "Datastore", []string{"summary"}, &datastores); err != nil {
		return nil, fmt.Errorf("list datastores: %w", err)
	}
	return datastores, nil
}

// retrieve walks a recursive container view rooted at the service root
// folder and loads the requested properties for one managed object kind.
func (c *Client) retrieve(ctx context.Context, kind string, props []string, dst interface{}) error {
	m := view.NewManager(c.vim)

	v, err := m.CreateContainerView(ctx, c.vim.ServiceContent.RootFolder, []string{kind}, true)
	if err != nil {
		return fmt.Errorf("create container view for %s: %w", kind, err)
	}
	defer func() {
		_ = v.Destroy(ctx)
	}()

	if err := v.Retrieve(ctx, []string{kind}, props, dst); err != nil {
		return fmt.Errorf("retrieve %s properties: %w", kind, err)
	}
	return nil
}
