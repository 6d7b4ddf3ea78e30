package inject_test

import (
	"github.com/google/uuid"

	"github.com/km-arc/go-inject"
)

// ── Fixture services ──────────────────────────────────────────────────────────

type SimpleService struct {
	id string
}

func NewSimpleService() *SimpleService {
	return &SimpleService{id: uuid.NewString()}
}

func (s *SimpleService) Value() string { return "simple" }

type DependencyService struct {
	id string
}

func NewDependencyService() *DependencyService {
	return &DependencyService{id: uuid.NewString()}
}

func (s *DependencyService) Value() string { return "dependency" }

type ServiceWithDependency struct {
	Dep *DependencyService
}

func NewServiceWithDependency(dep *DependencyService) *ServiceWithDependency {
	return &ServiceWithDependency{Dep: dep}
}

type ServiceWithProvider struct {
	dep inject.Provider[*DependencyService]
}

func NewServiceWithProvider(dep inject.Provider[*DependencyService]) *ServiceWithProvider {
	return &ServiceWithProvider{dep: dep}
}

func (s *ServiceWithProvider) Dependency() (*DependencyService, error) {
	return s.dep.Get()
}

// ── Matcher fixtures ──────────────────────────────────────────────────────────

type Service interface {
	Name() string
}

type ConcreteService struct{}

func NewConcreteService() *ConcreteService { return &ConcreteService{} }

func (*ConcreteService) Name() string { return "concrete" }

// ── Listener fixtures ─────────────────────────────────────────────────────────

type ConfigService struct{}

func NewConfigService() *ConfigService { return &ConfigService{} }

func (*ConfigService) Value() string { return "config-value" }

// ServiceNeedingConfig receives its config through a members injector rather
// than its constructor.
type ServiceNeedingConfig struct {
	config *ConfigService
}

func NewServiceNeedingConfig() *ServiceNeedingConfig { return &ServiceNeedingConfig{} }

func (s *ServiceNeedingConfig) SetConfig(c *ConfigService) { s.config = c }
func (s *ServiceNeedingConfig) Config() *ConfigService    { return s.config }

// ServiceWithSetter models the explicit (type, setter) registration that
// replaces annotation-driven field injection.
type ServiceWithSetter struct {
	injected string
}

func NewServiceWithSetter() *ServiceWithSetter { return &ServiceWithSetter{} }

func (s *ServiceWithSetter) SetInjectedValue(v string) { s.injected = v }
func (s *ServiceWithSetter) InjectedValue() string     { return s.injected }

// ── Multibinding fixtures ─────────────────────────────────────────────────────

type Plugin interface {
	PluginName() string
}

type PluginA struct{}

func NewPluginA() *PluginA { return &PluginA{} }

func (*PluginA) PluginName() string { return "A" }

type PluginB struct{}

func NewPluginB() *PluginB { return &PluginB{} }

func (*PluginB) PluginName() string { return "B" }

// ── Cycle fixtures ────────────────────────────────────────────────────────────

type CycleA struct {
	B *CycleB
}

func NewCycleA(b *CycleB) *CycleA { return &CycleA{B: b} }

type CycleB struct {
	A     *CycleA
	LazyA inject.Provider[*CycleA]
}

func NewCycleB(a *CycleA) *CycleB { return &CycleB{A: a} }

func NewCycleBLazy(a inject.Provider[*CycleA]) *CycleB { return &CycleB{LazyA: a} }

// CycleEntry sits outside the A/B cycle and reaches it through A.
type CycleEntry struct {
	A *CycleA
}

func NewCycleEntry(a *CycleA) *CycleEntry { return &CycleEntry{A: a} }
