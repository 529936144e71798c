package repository

// Repos agrupa los repositorios atados a una misma transacción.
// Lo entrega el TxRunner a los casos de uso.
type Repos struct {
	Movements  StockMovementRepository
	Batches    BatchRepository
	Products   ProductRepository
	Warehouses WarehouseRepository
	Suppliers  SupplierRepository
	Customers  CustomerRepository
	Sales      SaleRepository
	Documents  DocumentRepository
	PickTasks  PickTaskRepository
	Ledger     ReceivableLedgerRepository
	Payments   PaymentRepository
}
