package accounts

import (
	"context"
	"fmt"
)

// DefaultChart returns the starter chart for a chart name. Parents come
// before their sub-accounts.
func DefaultChart(chart string) []Input {
	switch chart {
	case "none":
		return nil
	case "basic":
		return basicChart()
	default:
		return basicChart()
	}
}

// Seed creates every account of chart in order.
func (m *Manager) Seed(ctx context.Context, chart []Input) (int, error) {
	for i, in := range chart {
		if _, err := m.Create(ctx, in); err != nil {
			return i, fmt.Errorf("seeding %s: %w", in.Code, err)
		}
	}
	return len(chart), nil
}

func basicChart() []Input {
	return []Input{
		{Code: "1000", Name: "ACTIVOS", Type: "asset", Description: "Activos totales"},
		{Code: "1100", Name: "Activos Corrientes", Type: "asset", ParentCode: "1000"},
		{Code: "1110", Name: "Caja General", Type: "asset", ParentCode: "1100", AllowPosting: true, Description: "Efectivo en caja"},
		{Code: "1120", Name: "Bancos", Type: "asset", ParentCode: "1100", AllowPosting: true, Description: "Cuentas bancarias"},
		{Code: "1130", Name: "Cuentas por Cobrar", Type: "asset", ParentCode: "1100", AllowPosting: true, Description: "Clientes"},
		{Code: "2000", Name: "PASIVOS", Type: "liability", Description: "Pasivos totales"},
		{Code: "2100", Name: "Cuentas por Pagar", Type: "liability", ParentCode: "2000", AllowPosting: true, Description: "Proveedores"},
		{Code: "2200", Name: "Impuestos por Pagar", Type: "liability", ParentCode: "2000", AllowPosting: true},
		{Code: "3000", Name: "PATRIMONIO", Type: "equity", Description: "Capital, reservas y resultados"},
		{Code: "3100", Name: "Capital Social", Type: "equity", ParentCode: "3000", AllowPosting: true},
		{Code: "4000", Name: "INGRESOS", Type: "income", Description: "Ingresos operacionales"},
		{Code: "4100", Name: "Ventas", Type: "income", ParentCode: "4000", AllowPosting: true},
		{Code: "5000", Name: "GASTOS", Type: "expense", Description: "Gastos operacionales"},
		{Code: "5100", Name: "Gastos de Oficina", Type: "expense", ParentCode: "5000", AllowPosting: true, Description: "Suministros de oficina"},
		{Code: "5200", Name: "Alquiler", Type: "expense", ParentCode: "5000", AllowPosting: true},
	}
}
