package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/backoffice-api/internal/application/inventory"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos (sin DB). El fake de TxRunner pasa los
// mismos repos al callback: como el caso de uso verifica la precondición antes
// de mutar, un fallo no deja efectos parciales ni en memoria.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	rows map[string]*entity.SiteStock // clave item|site
	// staleLockedReads simula la ventana de la primera entrada: la fila de la
	// otra sesión aún no está comprometida, así que el SELECT FOR UPDATE lee
	// cantidad 0 aunque el almacén ya tenga la fila.
	staleLockedReads bool
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[string]*entity.SiteStock)}
}

func (f *fakeStockRepo) key(itemID, siteID string) string { return itemID + "|" + siteID }

func (f *fakeStockRepo) Get(itemID, siteID string) (*entity.SiteStock, error) {
	if s, ok := f.rows[f.key(itemID, siteID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.SiteStock{ItemID: itemID, SiteID: siteID}, nil
}

func (f *fakeStockRepo) GetForUpdate(itemID, siteID string) (*entity.SiteStock, error) {
	if f.staleLockedReads {
		return &entity.SiteStock{ItemID: itemID, SiteID: siteID}, nil
	}
	return f.Get(itemID, siteID)
}

func (f *fakeStockRepo) AddQuantity(itemID, siteID string, delta int64) error {
	k := f.key(itemID, siteID)
	if s, ok := f.rows[k]; ok {
		s.Quantity += delta
		s.UpdatedAt = time.Now()
		return nil
	}
	f.rows[k] = &entity.SiteStock{ItemID: itemID, SiteID: siteID, Quantity: delta, UpdatedAt: time.Now()}
	return nil
}

func (f *fakeStockRepo) ListByItem(itemID string) ([]*entity.SiteStock, error) {
	var out []*entity.SiteStock
	for _, s := range f.rows {
		if s.ItemID == itemID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListBySite(siteID string) ([]*entity.SiteStock, error) {
	var out []*entity.SiteStock
	for _, s := range f.rows {
		if s.SiteID == siteID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) TotalByItem(itemID string) (int64, error) {
	var total int64
	for _, s := range f.rows {
		if s.ItemID == itemID {
			total += s.Quantity
		}
	}
	return total, nil
}

func (f *fakeStockRepo) SiteHasStock(siteID string) (bool, error) {
	for _, s := range f.rows {
		if s.SiteID == siteID && s.Quantity > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStockRepo) quantity(itemID, siteID string) int64 {
	if s, ok := f.rows[f.key(itemID, siteID)]; ok {
		return s.Quantity
	}
	return 0
}

type fakeTxRepo struct {
	created []*entity.InventoryTransaction
}

func (f *fakeTxRepo) Create(tx *entity.InventoryTransaction) error {
	cp := *tx
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeTxRepo) ListByItem(itemID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range f.created {
		if tx.ItemID == itemID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTxRepo) ListBySite(siteID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range f.created {
		if tx.SiteID != nil && *tx.SiteID == siteID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem
}

func (f *fakeItemRepo) Create(item *entity.InventoryItem) error { f.items[item.ID] = item; return nil }
func (f *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return f.items[id], nil
}
func (f *fakeItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) { return nil, nil }
func (f *fakeItemRepo) Update(item *entity.InventoryItem) error            { return nil }
func (f *fakeItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	return nil, nil
}
func (f *fakeItemRepo) Delete(id string) error { return nil }

type fakeSiteRepo struct {
	sites map[string]*entity.Site
}

func (f *fakeSiteRepo) Create(site *entity.Site) error { f.sites[site.ID] = site; return nil }
func (f *fakeSiteRepo) GetByID(id string) (*entity.Site, error) {
	return f.sites[id], nil
}
func (f *fakeSiteRepo) Update(site *entity.Site) error                  { return nil }
func (f *fakeSiteRepo) List(limit, offset int) ([]*entity.Site, error) { return nil, nil }
func (f *fakeSiteRepo) Delete(id string) error                          { delete(f.sites, id); return nil }

type fakeTxRunner struct {
	stock *fakeStockRepo
	txs   *fakeTxRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.SiteStockRepository, repository.TransactionRepository) error) error {
	return fn(f.stock, f.txs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type ledgerFixture struct {
	uc    *inventory.LedgerUseCase
	stock *fakeStockRepo
	txs   *fakeTxRepo
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	stock := newFakeStockRepo()
	txs := &fakeTxRepo{}
	items := &fakeItemRepo{items: map[string]*entity.InventoryItem{
		"item-x": {ID: "item-x", Name: "Router", MinQuantity: 5},
	}}
	sites := &fakeSiteRepo{sites: map[string]*entity.Site{
		"warehouse": {ID: "warehouse", Name: "Bodega Central", Type: entity.SiteTypeWarehouse, Active: true},
		"office":    {ID: "office", Name: "Oficina", Type: entity.SiteTypeOffice, Active: true},
		"inactive":  {ID: "inactive", Name: "Sede Cerrada", Type: entity.SiteTypeOffice, Active: false},
	}}
	runner := &fakeTxRunner{stock: stock, txs: txs}
	return &ledgerFixture{
		uc:    inventory.NewLedgerUseCase(runner, items, sites, stock, txs),
		stock: stock,
		txs:   txs,
	}
}

func (fx *ledgerFixture) seed(t *testing.T, itemID, siteID string, qty int64) {
	t.Helper()
	require.NoError(t, fx.stock.AddQuantity(itemID, siteID, qty))
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckIn / CheckOut
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckIn_CreaFilaYTransaccion(t *testing.T) {
	fx := newLedgerFixture(t)

	err := fx.uc.CheckIn(context.Background(), "item-x", "warehouse", 10, "compra inicial", "user-1")
	require.NoError(t, err)

	assert.EqualValues(t, 10, fx.stock.quantity("item-x", "warehouse"))
	require.Len(t, fx.txs.created, 1)
	tx := fx.txs.created[0]
	assert.Equal(t, entity.TransactionCheckIn, tx.Type)
	assert.EqualValues(t, 10, tx.Quantity)
	assert.Equal(t, "warehouse", *tx.SiteID)
	assert.Equal(t, "user-1", tx.CreatedBy)
}

// Dos sesiones hacen la primera entrada del mismo par ítem+sede: la fila aún
// no existe, así que el SELECT FOR UPDATE de ninguna ve (ni bloquea) la fila
// de la otra. Las entradas deben acumularse igual — la escritura es un delta
// atómico, nunca una cantidad absoluta calculada de esa lectura en cero.
func TestCheckIn_PrimerasEntradasConcurrentesSeAcumulan(t *testing.T) {
	fx := newLedgerFixture(t)
	fx.stock.staleLockedReads = true
	ctx := context.Background()

	require.NoError(t, fx.uc.CheckIn(ctx, "item-x", "warehouse", 5, "sesión A", "user-a"))
	require.NoError(t, fx.uc.CheckIn(ctx, "item-x", "warehouse", 5, "sesión B", "user-b"))

	assert.EqualValues(t, 10, fx.stock.quantity("item-x", "warehouse"),
		"dos entradas de 5 deben dejar 10, no pisarse en 5")
	require.Len(t, fx.txs.created, 2)
	assert.EqualValues(t, 5, fx.txs.created[0].Quantity)
	assert.EqualValues(t, 5, fx.txs.created[1].Quantity)
}

func TestCheckIn_CantidadNoPositiva(t *testing.T) {
	fx := newLedgerFixture(t)

	for _, qty := range []int64{0, -3} {
		err := fx.uc.CheckIn(context.Background(), "item-x", "warehouse", qty, "", "user-1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, fx.txs.created, "una entrada rechazada no escribe transacciones")
}

func TestCheckIn_ItemOSedeInexistente(t *testing.T) {
	fx := newLedgerFixture(t)

	assert.ErrorIs(t, fx.uc.CheckIn(context.Background(), "no-item", "warehouse", 1, "", "u"), domain.ErrNotFound)
	assert.ErrorIs(t, fx.uc.CheckIn(context.Background(), "item-x", "no-site", 1, "", "u"), domain.ErrNotFound)
}

func TestCheckOut_StockInsuficienteNoMuta(t *testing.T) {
	fx := newLedgerFixture(t)
	fx.seed(t, "item-x", "warehouse", 3)

	err := fx.uc.CheckOut(context.Background(), "item-x", "warehouse", 5, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.EqualValues(t, 3, fx.stock.quantity("item-x", "warehouse"), "la cantidad no debe cambiar")
	assert.Empty(t, fx.txs.created, "no debe escribirse fila de auditoría")
}

// Cualquier secuencia que respete las precondiciones deja todas las cantidades >= 0.
func TestLedger_NuncaNegativo(t *testing.T) {
	fx := newLedgerFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.uc.CheckIn(ctx, "item-x", "warehouse", 7, "", "u"))
	require.NoError(t, fx.uc.CheckOut(ctx, "item-x", "warehouse", 4, "", "u"))
	require.NoError(t, fx.uc.CheckOut(ctx, "item-x", "warehouse", 3, "", "u"))
	// Se agotó: la siguiente salida debe fallar sin mutar
	assert.ErrorIs(t, fx.uc.CheckOut(ctx, "item-x", "warehouse", 1, "", "u"), domain.ErrInsufficientStock)

	assert.EqualValues(t, 0, fx.stock.quantity("item-x", "warehouse"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: 10 en bodega, 0 en oficina. Trasladar 4 deja 6/4 y
// dos transacciones (check_out en bodega, check_in en oficina). Luego una
// salida de 5 en oficina falla (solo hay 4) sin tocar el estado.
func TestTransfer_EscenarioReferencia(t *testing.T) {
	fx := newLedgerFixture(t)
	ctx := context.Background()
	fx.seed(t, "item-x", "warehouse", 10)

	require.NoError(t, fx.uc.Transfer(ctx, "item-x", "warehouse", "office", 4, "user-1"))

	assert.EqualValues(t, 6, fx.stock.quantity("item-x", "warehouse"))
	assert.EqualValues(t, 4, fx.stock.quantity("item-x", "office"))

	require.Len(t, fx.txs.created, 2)
	out, in := fx.txs.created[0], fx.txs.created[1]
	assert.Equal(t, entity.TransactionCheckOut, out.Type)
	assert.Equal(t, "warehouse", *out.SiteID)
	assert.EqualValues(t, 4, out.Quantity)
	assert.Equal(t, entity.TransactionCheckIn, in.Type)
	assert.Equal(t, "office", *in.SiteID)
	assert.EqualValues(t, 4, in.Quantity)
	// Ambas mitades quedan anotadas con la sede de origen
	assert.Equal(t, "Traslado desde Bodega Central", out.Note)
	assert.Equal(t, "Traslado desde Bodega Central", in.Note)

	err := fx.uc.CheckOut(ctx, "item-x", "office", 5, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 4, fx.stock.quantity("item-x", "office"), "estado intacto tras el fallo")
}

// Conservación: el total del ítem sobre todas las sedes no cambia con un traslado.
func TestTransfer_ConservaElTotal(t *testing.T) {
	fx := newLedgerFixture(t)
	fx.seed(t, "item-x", "warehouse", 8)
	fx.seed(t, "item-x", "office", 2)

	require.NoError(t, fx.uc.Transfer(context.Background(), "item-x", "warehouse", "office", 5, "u"))

	total, err := fx.stock.TotalByItem("item-x")
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)
	assert.EqualValues(t, 3, fx.stock.quantity("item-x", "warehouse"))
	assert.EqualValues(t, 7, fx.stock.quantity("item-x", "office"))
}

func TestTransfer_MismaSede(t *testing.T) {
	fx := newLedgerFixture(t)
	fx.seed(t, "item-x", "warehouse", 10)

	err := fx.uc.Transfer(context.Background(), "item-x", "warehouse", "warehouse", 2, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_OrigenInsuficiente(t *testing.T) {
	fx := newLedgerFixture(t)
	fx.seed(t, "item-x", "warehouse", 2)

	err := fx.uc.Transfer(context.Background(), "item-x", "warehouse", "office", 5, "u")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 2, fx.stock.quantity("item-x", "warehouse"))
	assert.EqualValues(t, 0, fx.stock.quantity("item-x", "office"))
	assert.Empty(t, fx.txs.created)
}

// ──────────────────────────────────────────────────────────────────────────────
// EmptySite / vista derivada
// ──────────────────────────────────────────────────────────────────────────────

func TestEmptySite_TrasladaTodoElStock(t *testing.T) {
	fx := newLedgerFixture(t)
	fx.seed(t, "item-x", "office", 9)

	require.NoError(t, fx.uc.EmptySite(context.Background(), "office", "warehouse", "u"))

	assert.EqualValues(t, 0, fx.stock.quantity("item-x", "office"))
	assert.EqualValues(t, 9, fx.stock.quantity("item-x", "warehouse"))

	hasStock, err := fx.stock.SiteHasStock("office")
	require.NoError(t, err)
	assert.False(t, hasStock, "la sede queda vacía y ya puede eliminarse")
}

func TestEmptySite_DestinoInactivo(t *testing.T) {
	fx := newLedgerFixture(t)
	fx.seed(t, "item-x", "office", 3)

	err := fx.uc.EmptySite(context.Background(), "office", "inactive", "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualValues(t, 3, fx.stock.quantity("item-x", "office"))
}

func TestItemStock_TotalDerivadoYStockBajo(t *testing.T) {
	fx := newLedgerFixture(t)
	fx.seed(t, "item-x", "warehouse", 3)
	fx.seed(t, "item-x", "office", 2)

	item, rows, total, low, err := fx.uc.ItemStock("item-x")
	require.NoError(t, err)
	assert.Equal(t, "item-x", item.ID)
	assert.Len(t, rows, 2)
	assert.EqualValues(t, 5, total, "el total es la suma de las filas por sede")
	assert.True(t, low, "total 5 <= umbral 5 marca stock bajo")

	// Una entrada más y deja de estar en stock bajo
	require.NoError(t, fx.uc.CheckIn(context.Background(), "item-x", "warehouse", 1, "", "u"))
	_, _, total, low, err = fx.uc.ItemStock("item-x")
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	assert.False(t, low)
}
