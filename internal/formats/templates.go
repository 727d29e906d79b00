package formats

import "strings"

const csvTemplate = `code,name,type,parentCode,description,balance
1000,ACTIVOS,asset,,Activos totales,0
1100,Activos Corrientes,asset,1000,Activos de corto plazo,
1110,Caja General,asset,1100,Efectivo en caja,5000
2000,PASIVOS,liability,,Pasivos totales,0
2100,Cuentas por Pagar,liability,2000,Obligaciones con proveedores,
3000,PATRIMONIO,equity,,"Capital, reservas y resultados",0
4000,INGRESOS,income,,Ingresos operacionales,0
5000,GASTOS,expense,,Gastos operacionales,0
5100,Gastos de Oficina,expense,5000,Suministros de oficina,
`

const iifTemplate = "!ACCNT\tCODE\tTYPE\tDESC\tBALANCE\n" +
	"ACCNT\t1111\tBank\tCaja General\t5000.00\n" +
	"ACCNT\t1120\tAccounts Receivable\tCuentas por Cobrar\t\n" +
	"ACCNT\t1200\tFixed Asset\tMobiliario y Equipo\t\n" +
	"ACCNT\t2100\tAccounts Payable\tCuentas por Pagar\t\n" +
	"ACCNT\t2200\tCredit Card\tTarjeta de Credito\t\n" +
	"ACCNT\t3100\tEquity\tCapital Social\t\n" +
	"ACCNT\t4100\tIncome\tVentas\t\n" +
	"ACCNT\t5100\tCost of Goods Sold\tCosto de Ventas\t\n" +
	"ACCNT\t5200\tExpense\tGastos Generales\t\n"

const sageTemplate = `code,name,type,parentCode,description,balance
0010,Freehold Property,Fixed Assets,,Land and buildings,0
1100,Debtors Control Account,Debtors,,Trade debtors,
1200,Bank Current Account,Bank,,Main bank account,2500
2100,Creditors Control Account,Creditors,,Trade creditors,
2200,Sales Tax Control Account,VAT,,Output VAT,
3000,Capital,Capital,,Owner capital,0
4000,Sales Type A,Sales,,Product sales,
5000,Materials Purchased,Purchases,,Direct materials,
7100,Rent,Overheads,,Premises rent,
`

const xeroTemplate = `code,name,type,parentCode,description,balance
090,Business Bank Account,asset,,Main operating account,0
120,Accounts Receivable,asset,,Outstanding invoices,
800,Accounts Payable,liability,,Outstanding bills,
820,Sales Tax,liability,,Sales tax payable,
970,Owner Funds Introduced,equity,,Owner contributions,
200,Sales,revenue,,Income from sales,
260,Other Revenue,revenue,,Miscellaneous income,
400,Advertising,expense,,Marketing costs,
429,General Expenses,expense,,Sundry expenses,
`

const xmlTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<accounts>
  <account code="1000" name="ACTIVOS" type="asset" description="Activos totales"/>
  <account code="1100" name="Activos Corrientes" type="asset" parent="1000" description="Activos de corto plazo"/>
  <account code="1110" name="Caja General" type="asset" parent="1100" description="Efectivo en caja" balance="5000"/>
  <account code="2000" name="PASIVOS" type="liability" description="Pasivos totales"/>
  <account code="2100" type="liability" parent="2000" description="Obligaciones con proveedores">Cuentas por Pagar</account>
  <account code="3000" name="PATRIMONIO" type="equity" description="Capital y reservas"/>
  <account code="4000" name="INGRESOS" type="income" description="Ingresos operacionales"/>
  <account code="5000" name="GASTOS" type="expense" description="Gastos operacionales"/>
</accounts>
`

const sapTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<chartOfAccounts system="SAP" chart="INT">
  <account code="100000" name="Fixed Assets" type="asset"/>
  <account code="113100" name="Bank Account" type="asset" parent="100000"/>
  <account code="160000" name="Accounts Payable" type="liability"/>
  <account code="300000" name="Share Capital" type="equity"/>
  <account code="800000" name="Sales Revenue" type="income"/>
  <account code="400000" name="Consumption of Raw Materials" type="expense"/>
</chartOfAccounts>
`

const jsonTemplate = `[
  {"code": "1000", "name": "ACTIVOS", "type": "asset", "description": "Activos totales"},
  {"code": "1100", "name": "Activos Corrientes", "type": "asset", "parentCode": "1000"},
  {"accountCode": "1110", "accountName": "Caja General", "accountType": "asset", "parent": "1100", "balance": 5000},
  {"code": "2000", "name": "PASIVOS", "type": "liability"},
  {"code": "3000", "name": "PATRIMONIO", "type": "equity"},
  {"code": "4000", "name": "INGRESOS", "type": "income"},
  {"code": "5000", "name": "GASTOS", "type": "expense"}
]
`

func literal(s string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(s), nil }
}

// excelTemplate is the CSV template laid out as a workbook.
func excelTemplate() ([]byte, error) {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(csvTemplate), "\n") {
		rows = append(rows, splitCSVLine(line))
	}
	return workbook(rows)
}
