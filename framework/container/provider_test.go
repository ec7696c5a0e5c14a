package container_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-formrules/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *eagerProvider) Register(app *container.Container) {
	p.registerCalled = true
	app.Singleton("eager-svc", value("eager"))
}

func (p *eagerProvider) Boot(app *container.Container) {
	p.bootCalled = true
}

// deferredProvider is only registered when one of its abstracts is resolved.
type deferredProvider struct {
	container.BaseProvider
	registers  atomic.Int32
	bootCalled bool
}

func (p *deferredProvider) Register(app *container.Container) {
	p.registers.Add(1)
	app.Singleton("deferred-svc", value("deferred-value"))
	app.Singleton("deferred-other", value("other-value"))
}

func (p *deferredProvider) Boot(app *container.Container) {
	p.bootCalled = true
}

func (p *deferredProvider) IsDeferred() bool { return true }
func (p *deferredProvider) Provides() []string {
	return []string{"deferred-svc", "deferred-other"}
}

// lyingProvider claims an abstract it never registers.
type lyingProvider struct{ container.BaseProvider }

func (p *lyingProvider) Register(*container.Container) {}
func (p *lyingProvider) IsDeferred() bool              { return true }
func (p *lyingProvider) Provides() []string            { return []string{"ghost"} }

// multiProvider registers multiple abstracts.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(app *container.Container) {
	app.Singleton("alpha", value("α"))
	app.Singleton("beta", value("β"))
}

// ── Eager providers ───────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	reg.Register(p)

	assert.True(t, p.registerCalled, "Register() should run immediately for eager providers")
}

func TestRegistry_EagerProvider_BootCalledAfterBoot(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	reg.Register(p)
	assert.False(t, p.bootCalled)

	reg.Boot()
	assert.True(t, p.bootCalled)
}

func TestRegistry_EagerProvider_ServiceResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&eagerProvider{})
	reg.Boot()

	assert.Equal(t, "eager", c.Make("eager-svc"))
}

func TestRegistry_Boot_Idempotent(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	require.False(t, reg.Booted())

	reg.Register(&eagerProvider{})
	reg.Boot()
	reg.Boot()

	assert.True(t, reg.Booted())
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())

	p := &eagerProvider{}
	reg.Register(p)
	reg.Register(p)

	assert.Len(t, reg.Providers(), 1)
}

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	reg.Boot()

	p := &eagerProvider{}
	reg.Register(p)

	assert.True(t, p.bootCalled)
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)
	reg.Boot()

	assert.Zero(t, p.registers.Load())
	assert.False(t, p.bootCalled)
	assert.True(t, c.Bound("deferred-svc"))
}

func TestRegistry_DeferredProvider_RegisteredOnFirstMake(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)
	reg.Boot()

	assert.Equal(t, "deferred-value", c.Make("deferred-svc"))
	assert.Equal(t, "other-value", c.Make("deferred-other"))
	assert.Equal(t, int32(1), p.registers.Load())
	assert.True(t, p.bootCalled, "a provider loaded after Boot() is booted on load")
}

func TestRegistry_DeferredProvider_BeforeBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)

	assert.Equal(t, "deferred-value", c.Make("deferred-svc"))
	assert.False(t, p.bootCalled)
}

func TestRegistry_DeferredProvider_ConcurrentLoad(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	reg.Register(p)
	reg.Boot()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "deferred-value", c.Make("deferred-svc"))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), p.registers.Load())
}

func TestRegistry_DeferredProvider_MissingBinding(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&lyingProvider{})

	_, err := c.Get("ghost")
	require.ErrorIs(t, err, container.ErrNotBound)
}

// ── Multiple providers ────────────────────────────────────────────────────────

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	reg.Register(&multiProvider{})
	reg.Register(&eagerProvider{})
	reg.Boot()

	assert.Equal(t, "α", c.Make("alpha"))
	assert.Equal(t, "β", c.Make("beta"))
	assert.Equal(t, "eager", c.Make("eager-svc"))
}

func TestRegistry_Providers_ReturnsEagerOnes(t *testing.T) {
	reg := container.NewProviderRegistry(container.New())
	reg.Register(&eagerProvider{})
	reg.Register(&deferredProvider{})

	assert.Len(t, reg.Providers(), 1)
}

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	p.Boot(container.New())

	assert.False(t, p.IsDeferred())
	assert.Empty(t, p.Provides())
}
