package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Módulos funcionales que se pueden habilitar por configuración (APP_MODULES).
const (
	ModuleCatalog            = "catalog"
	ModuleInventory          = "inventory"
	ModuleSales              = "sales"
	ModuleInvoicing          = "invoicing"
	ModulePicking            = "picking"
	ModuleAccountsReceivable = "accounts_receivable"
	ModulePayments           = "payments"
	ModuleAnalytics          = "analytics"
)

// AllModules lista de módulos conocidos.
var AllModules = []string{
	ModuleCatalog, ModuleInventory, ModuleSales, ModuleInvoicing,
	ModulePicking, ModuleAccountsReceivable, ModulePayments, ModuleAnalytics,
}

// ModuleService informa qué módulos están activos. Se construye una vez en el arranque a partir
// de la configuración y no cambia mientras el proceso vive.
type ModuleService struct {
	active map[string]bool
}

// NewModuleService construye el servicio. Una lista vacía habilita todos los módulos.
// Devuelve error si la lista contiene un módulo desconocido.
func NewModuleService(enabled []string) (*ModuleService, error) {
	known := make(map[string]bool, len(AllModules))
	for _, m := range AllModules {
		known[m] = true
	}
	active := make(map[string]bool)
	for _, m := range enabled {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if !known[m] {
			return nil, fmt.Errorf("module: módulo desconocido %q", m)
		}
		active[m] = true
	}
	if len(active) == 0 {
		active = known
	}
	return &ModuleService{active: active}, nil
}

// HasActiveModule informa si el módulo está habilitado.
func (s *ModuleService) HasActiveModule(_ context.Context, moduleName string) (bool, error) {
	if moduleName == "" {
		return false, fmt.Errorf("module: moduleName es obligatorio")
	}
	return s.active[moduleName], nil
}

// Active módulos habilitados, ordenados.
func (s *ModuleService) Active() []string {
	out := make([]string, 0, len(s.active))
	for m := range s.active {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
