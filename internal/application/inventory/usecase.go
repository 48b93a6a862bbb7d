package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/backoffice-api/internal/domain"
	"github.com/tu-usuario/backoffice-api/internal/domain/entity"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// LedgerUseCase mantiene las cantidades autoritativas por sede+ítem y el
// historial append-only de transacciones. Las tres transiciones (check-in,
// check-out, traslado) corren dentro de una transacción de BD con bloqueo de
// fila (SELECT FOR UPDATE): la verificación de precondición y la mutación no
// pueden cruzarse con otra sesión.
type LedgerUseCase struct {
	txRunner  TxRunner
	itemRepo  repository.ItemRepository
	siteRepo  repository.SiteRepository
	stockRepo repository.SiteStockRepository
	txRepo    repository.TransactionRepository
}

// NewLedgerUseCase construye el caso de uso. stockRepo y txRepo (atados al pool)
// se usan solo para lecturas; toda mutación pasa por txRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	siteRepo repository.SiteRepository,
	stockRepo repository.SiteStockRepository,
	txRepo repository.TransactionRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		itemRepo:  itemRepo,
		siteRepo:  siteRepo,
		stockRepo: stockRepo,
		txRepo:    txRepo,
	}
}

// CheckIn suma quantity al stock del ítem en la sede (crea la fila si no existe)
// y registra la transacción de auditoría. Rechaza cantidades no positivas.
func (uc *LedgerUseCase) CheckIn(ctx context.Context, itemID, siteID string, quantity int64, note, userID string) error {
	if err := uc.validate(itemID, siteID, quantity); err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(stockRepo repository.SiteStockRepository, txRepo repository.TransactionRepository) error {
		return doCheckIn(stockRepo, txRepo, itemID, siteID, quantity, note, userID, now)
	})
}

// CheckOut resta quantity del stock del ítem en la sede y registra la transacción.
// Precondición: cantidad actual >= solicitada; si no, ErrInsufficientStock sin
// ningún efecto parcial (ni fila de transacción ni cambio de cantidad).
func (uc *LedgerUseCase) CheckOut(ctx context.Context, itemID, siteID string, quantity int64, note, userID string) error {
	if err := uc.validate(itemID, siteID, quantity); err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(stockRepo repository.SiteStockRepository, txRepo repository.TransactionRepository) error {
		return doCheckOut(stockRepo, txRepo, itemID, siteID, quantity, note, userID, now)
	})
}

// Transfer mueve quantity del ítem de una sede a otra como unidad atómica:
// check_out en origen y check_in en destino, ambas transacciones anotadas con
// la sede de origen. Falla completa si el origen no alcanza.
func (uc *LedgerUseCase) Transfer(ctx context.Context, itemID, fromSiteID, toSiteID string, quantity int64, userID string) error {
	if fromSiteID == toSiteID {
		return domain.ErrInvalidInput
	}
	if err := uc.validate(itemID, fromSiteID, quantity); err != nil {
		return err
	}
	fromSite, err := uc.siteRepo.GetByID(fromSiteID)
	if err != nil {
		return err
	}
	toSite, err := uc.siteRepo.GetByID(toSiteID)
	if err != nil {
		return err
	}
	if fromSite == nil || toSite == nil {
		return domain.ErrNotFound
	}

	note := transferNote(fromSite.Name)
	now := time.Now()
	return uc.txRunner.Run(ctx, func(stockRepo repository.SiteStockRepository, txRepo repository.TransactionRepository) error {
		if err := doCheckOut(stockRepo, txRepo, itemID, fromSiteID, quantity, note, userID, now); err != nil {
			return err
		}
		return doCheckIn(stockRepo, txRepo, itemID, toSiteID, quantity, note, userID, now)
	})
}

// EmptySite traslada la cantidad completa de cada ítem de la sede a una sede
// activa sobreviviente, en una sola transacción. Es el paso previo obligatorio
// para eliminar una sede con stock.
func (uc *LedgerUseCase) EmptySite(ctx context.Context, siteID, toSiteID, userID string) error {
	if siteID == toSiteID {
		return domain.ErrInvalidInput
	}
	fromSite, err := uc.siteRepo.GetByID(siteID)
	if err != nil {
		return err
	}
	toSite, err := uc.siteRepo.GetByID(toSiteID)
	if err != nil {
		return err
	}
	if fromSite == nil || toSite == nil {
		return domain.ErrNotFound
	}
	if !toSite.Active {
		return domain.ErrInvalidInput
	}

	note := transferNote(fromSite.Name)
	now := time.Now()
	return uc.txRunner.Run(ctx, func(stockRepo repository.SiteStockRepository, txRepo repository.TransactionRepository) error {
		rows, err := stockRepo.ListBySite(siteID)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if row.Quantity == 0 {
				// Fila en cero equivale a ausencia de fila: nada que mover
				continue
			}
			if err := doCheckOut(stockRepo, txRepo, row.ItemID, siteID, row.Quantity, note, userID, now); err != nil {
				return err
			}
			if err := doCheckIn(stockRepo, txRepo, row.ItemID, toSiteID, row.Quantity, note, userID, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// ItemStock devuelve el stock de un ítem desglosado por sede más el total
// derivado (suma en tiempo de lectura) y la señal de stock bajo.
func (uc *LedgerUseCase) ItemStock(itemID string) (*entity.InventoryItem, []*entity.SiteStock, int64, bool, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, nil, 0, false, err
	}
	if item == nil {
		return nil, nil, 0, false, domain.ErrNotFound
	}
	rows, err := uc.stockRepo.ListByItem(itemID)
	if err != nil {
		return nil, nil, 0, false, err
	}
	var total int64
	for _, r := range rows {
		total += r.Quantity
	}
	return item, rows, total, total <= item.MinQuantity, nil
}

// HistoryByItem historial de transacciones de un ítem, más reciente primero.
func (uc *LedgerUseCase) HistoryByItem(itemID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	return uc.txRepo.ListByItem(itemID, limit, offset)
}

// HistoryBySite historial de transacciones de una sede, más reciente primero.
func (uc *LedgerUseCase) HistoryBySite(siteID string, limit, offset int) ([]*entity.InventoryTransaction, error) {
	return uc.txRepo.ListBySite(siteID, limit, offset)
}

// validate verifica cantidad positiva y existencia de ítem y sede.
func (uc *LedgerUseCase) validate(itemID, siteID string, quantity int64) error {
	if itemID == "" || siteID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	site, err := uc.siteRepo.GetByID(siteID)
	if err != nil {
		return err
	}
	if site == nil {
		return domain.ErrNotFound
	}
	return nil
}

// doCheckIn: suma atómica sobre la fila (se crea si no existe) y registra
// check_in. Corre dentro de la tx del caller. La suma es un delta en una sola
// sentencia, no un read-modify-write: cuando la fila todavía no existe el
// SELECT FOR UPDATE no tiene nada que bloquear y una cantidad absoluta
// calculada de esa lectura pisaría la entrada concurrente.
func doCheckIn(
	stockRepo repository.SiteStockRepository,
	txRepo repository.TransactionRepository,
	itemID, siteID string, quantity int64, note, userID string, now time.Time,
) error {
	if err := stockRepo.AddQuantity(itemID, siteID, quantity); err != nil {
		return err
	}
	return txRepo.Create(&entity.InventoryTransaction{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		SiteID:    &siteID,
		Type:      entity.TransactionCheckIn,
		Quantity:  quantity,
		Note:      note,
		CreatedBy: userID,
		CreatedAt: now,
	})
}

// doCheckOut: bloquea la fila, verifica stock >= solicitado, resta y registra
// check_out. Una fila ausente lee cantidad 0 y falla la precondición antes de
// escribir; sobre filas existentes el lock serializa verificación y resta.
func doCheckOut(
	stockRepo repository.SiteStockRepository,
	txRepo repository.TransactionRepository,
	itemID, siteID string, quantity int64, note, userID string, now time.Time,
) error {
	stock, err := stockRepo.GetForUpdate(itemID, siteID)
	if err != nil {
		return err
	}
	if stock.Quantity < quantity {
		return domain.ErrInsufficientStock
	}
	if err := stockRepo.AddQuantity(itemID, siteID, -quantity); err != nil {
		return err
	}
	return txRepo.Create(&entity.InventoryTransaction{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		SiteID:    &siteID,
		Type:      entity.TransactionCheckOut,
		Quantity:  quantity,
		Note:      note,
		CreatedBy: userID,
		CreatedAt: now,
	})
}

// transferNote anota ambas mitades del traslado con la sede de origen.
func transferNote(fromSiteName string) string {
	return fmt.Sprintf("Traslado desde %s", fromSiteName)
}
