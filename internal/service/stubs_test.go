package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lrplaceres/punto-venta/internal/model"
	"github.com/lrplaceres/punto-venta/internal/repository"
)

// In-memory repository stubs. The services run with a nil *gorm.DB, so
// runTx calls the closure directly and every Tx method ignores its tx.

var errStubNotFound = errors.New("not found")

func futureLicencia() time.Time { return time.Now().AddDate(1, 0, 0) }

// ─── Usuario ─────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uint]*model.Usuario
	nextID   uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uint]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.nextID++
	u.ID = r.nextID
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errStubNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsuario(_ context.Context, usuario string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Usuario == usuario {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.ID]; !ok {
		return errStubNotFound
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Delete(_ context.Context, id uint) error {
	delete(r.usuarios, id)
	return nil
}

func (r *stubUsuarioRepo) ExisteUsuario(_ context.Context, usuario string) (bool, error) {
	for _, u := range r.usuarios {
		if u.Usuario == usuario {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUsuarioRepo) Contador(_ context.Context, _, _ time.Time) (int64, int64, error) {
	return int64(len(r.usuarios)), 0, nil
}

func (r *stubUsuarioRepo) ListDependientes(_ context.Context, _ uint) ([]repository.DependienteRow, error) {
	return nil, nil
}

func (r *stubUsuarioRepo) FindDependiente(_ context.Context, id, _ uint, _ bool) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok || u.Rol != model.RolDependiente {
		return nil, errStubNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

// ─── Negocio ─────────────────────────────────────────────────────────────────

type stubNegocioRepo struct {
	negocios map[uint]*model.Negocio
	nextID   uint
}

func newStubNegocioRepo() *stubNegocioRepo {
	return &stubNegocioRepo{negocios: make(map[uint]*model.Negocio)}
}

func (r *stubNegocioRepo) Create(_ context.Context, n *model.Negocio) error {
	r.nextID++
	n.ID = r.nextID
	r.negocios[n.ID] = n
	return nil
}

func (r *stubNegocioRepo) FindByID(_ context.Context, id uint) (*model.Negocio, error) {
	n, ok := r.negocios[id]
	if !ok {
		return nil, errStubNotFound
	}
	return n, nil
}

func (r *stubNegocioRepo) ListAll(_ context.Context) ([]model.Negocio, error) {
	out := make([]model.Negocio, 0, len(r.negocios))
	for _, n := range r.negocios {
		out = append(out, *n)
	}
	return out, nil
}

func (r *stubNegocioRepo) ListByPropietario(_ context.Context, propietarioID uint) ([]model.Negocio, error) {
	var out []model.Negocio
	for _, n := range r.negocios {
		if n.PropietarioID == propietarioID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNegocioRepo) Update(_ context.Context, n *model.Negocio) error {
	if _, ok := r.negocios[n.ID]; !ok {
		return errStubNotFound
	}
	r.negocios[n.ID] = n
	return nil
}

func (r *stubNegocioRepo) Delete(_ context.Context, id uint) error {
	delete(r.negocios, id)
	return nil
}

func (r *stubNegocioRepo) Contador(_ context.Context, _, _ time.Time) (int64, int64, error) {
	return int64(len(r.negocios)), 0, nil
}

func (r *stubNegocioRepo) EsPropietario(_ context.Context, negocioID, usuarioID uint, conLicencia bool) (bool, error) {
	n, ok := r.negocios[negocioID]
	if !ok || n.PropietarioID != usuarioID {
		return false, nil
	}
	if conLicencia && n.FechaLicencia.Before(time.Now().Truncate(24*time.Hour)) {
		return false, nil
	}
	return true, nil
}

func (r *stubNegocioRepo) LicenciasPorVencer(_ context.Context, _ time.Time) ([]repository.LicenciaPorVencerRow, error) {
	return nil, nil
}

func (r *stubNegocioRepo) DB() *gorm.DB { return nil }

// ─── Punto ───────────────────────────────────────────────────────────────────

type stubPuntoRepo struct {
	puntos   map[uint]*model.Punto
	negocios *stubNegocioRepo
	nextID   uint
}

func newStubPuntoRepo(negocios *stubNegocioRepo) *stubPuntoRepo {
	return &stubPuntoRepo{puntos: make(map[uint]*model.Punto), negocios: negocios}
}

func (r *stubPuntoRepo) Create(_ context.Context, p *model.Punto) error {
	r.nextID++
	p.ID = r.nextID
	r.puntos[p.ID] = p
	return nil
}

func (r *stubPuntoRepo) FindByID(_ context.Context, id uint) (*model.Punto, error) {
	p, ok := r.puntos[id]
	if !ok {
		return nil, errStubNotFound
	}
	return p, nil
}

func (r *stubPuntoRepo) ListByPropietario(_ context.Context, _ uint) ([]repository.PuntoRow, error) {
	return nil, nil
}

func (r *stubPuntoRepo) ListByNegocio(_ context.Context, negocioID uint) ([]model.Punto, error) {
	var out []model.Punto
	for _, p := range r.puntos {
		if p.NegocioID == negocioID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPuntoRepo) Update(_ context.Context, p *model.Punto) error {
	if _, ok := r.puntos[p.ID]; !ok {
		return errStubNotFound
	}
	r.puntos[p.ID] = p
	return nil
}

func (r *stubPuntoRepo) Delete(_ context.Context, id uint) error {
	delete(r.puntos, id)
	return nil
}

func (r *stubPuntoRepo) Contador(_ context.Context, _, _ time.Time) (int64, int64, error) {
	return int64(len(r.puntos)), 0, nil
}

func (r *stubPuntoRepo) PerteneceAPropietario(ctx context.Context, puntoID, usuarioID uint, conLicencia bool) (bool, error) {
	p, ok := r.puntos[puntoID]
	if !ok {
		return false, nil
	}
	return r.negocios.EsPropietario(ctx, p.NegocioID, usuarioID, conLicencia)
}

func (r *stubPuntoRepo) DB() *gorm.DB { return nil }

// ─── Producto ────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uint]*model.Producto
	nextID    uint
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uint]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.nextID++
	p.ID = r.nextID
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errStubNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) ListByPropietario(_ context.Context, _ uint) ([]repository.ProductoRow, error) {
	return nil, nil
}

func (r *stubProductoRepo) ListByNegocio(_ context.Context, negocioID uint) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.NegocioID == negocioID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return errStubNotFound
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uint) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) Contador(_ context.Context, _, _ time.Time) (int64, int64, error) {
	return int64(len(r.productos)), 0, nil
}

func (r *stubProductoRepo) ExisteNombre(_ context.Context, negocioID uint, nombre string) (bool, error) {
	for _, p := range r.productos {
		if p.NegocioID == negocioID && p.Nombre == nombre {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductoRepo) PerteneceANegocio(_ context.Context, productoID, negocioID uint) (bool, error) {
	p, ok := r.productos[productoID]
	return ok && p.NegocioID == negocioID, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ─── Inventario ──────────────────────────────────────────────────────────────

type stubInventarioRepo struct {
	inventarios    map[uint]*model.Inventario
	distribuciones *stubDistribucionRepo
	aDistribuir    []repository.InventarioADistribuirRow
	costosBrutos   []repository.MontoPorDiaRow
	nextID         uint
}

func newStubInventarioRepo() *stubInventarioRepo {
	return &stubInventarioRepo{inventarios: make(map[uint]*model.Inventario)}
}

func (r *stubInventarioRepo) Create(_ context.Context, i *model.Inventario) error {
	r.nextID++
	i.ID = r.nextID
	r.inventarios[i.ID] = i
	return nil
}

func (r *stubInventarioRepo) FindByID(_ context.Context, id uint) (*model.Inventario, error) {
	i, ok := r.inventarios[id]
	if !ok {
		return nil, errStubNotFound
	}
	return i, nil
}

func (r *stubInventarioRepo) Update(_ context.Context, i *model.Inventario) error {
	if _, ok := r.inventarios[i.ID]; !ok {
		return errStubNotFound
	}
	r.inventarios[i.ID] = i
	return nil
}

func (r *stubInventarioRepo) Delete(_ context.Context, id uint) error {
	delete(r.inventarios, id)
	return nil
}

func (r *stubInventarioRepo) ListByPropietario(_ context.Context, _ uint) ([]repository.InventarioRow, error) {
	return nil, nil
}

func (r *stubInventarioRepo) ADistribuir(_ context.Context, _ uint) ([]repository.InventarioADistribuirRow, error) {
	return r.aDistribuir, nil
}

func (r *stubInventarioRepo) CostosBrutos(_ context.Context, _ uint, _, _ time.Time) ([]repository.MontoPorDiaRow, error) {
	return r.costosBrutos, nil
}

func (r *stubInventarioRepo) Contador(_ context.Context, _, _ time.Time) (int64, int64, error) {
	return int64(len(r.inventarios)), 0, nil
}

// DistribuidoTx sums the stub distribution rows against the lot, exactly
// like the SQL aggregate does.
func (r *stubInventarioRepo) DistribuidoTx(_ *gorm.DB, inventarioID uint) (decimal.Decimal, error) {
	total := decimal.Zero
	if r.distribuciones == nil {
		return total, nil
	}
	for _, d := range r.distribuciones.distribuciones {
		if d.InventarioID == inventarioID {
			total = total.Add(d.Cantidad)
		}
	}
	return total, nil
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

// ─── Distribucion ────────────────────────────────────────────────────────────

type stubDistribucionRepo struct {
	distribuciones map[uint]*model.Distribucion
	ventas         *stubVentaRepo
	resumen        []repository.DistribucionResumenRow
	nextID         uint
}

func newStubDistribucionRepo() *stubDistribucionRepo {
	return &stubDistribucionRepo{distribuciones: make(map[uint]*model.Distribucion)}
}

func (r *stubDistribucionRepo) CreateTx(_ *gorm.DB, d *model.Distribucion) error {
	r.nextID++
	d.ID = r.nextID
	r.distribuciones[d.ID] = d
	return nil
}

func (r *stubDistribucionRepo) FindByID(_ context.Context, id uint) (*model.Distribucion, error) {
	d, ok := r.distribuciones[id]
	if !ok {
		return nil, errStubNotFound
	}
	// Hand back a copy, like a fresh row scan would: callers mutate the
	// result before writing it back.
	copia := *d
	return &copia, nil
}

func (r *stubDistribucionRepo) Detail(_ context.Context, id uint) (*repository.DistribucionDetailRow, error) {
	return nil, errStubNotFound
}

func (r *stubDistribucionRepo) Update(_ context.Context, d *model.Distribucion) error {
	if _, ok := r.distribuciones[d.ID]; !ok {
		return errStubNotFound
	}
	r.distribuciones[d.ID] = d
	return nil
}

func (r *stubDistribucionRepo) UpdateTx(_ *gorm.DB, d *model.Distribucion) error {
	if _, ok := r.distribuciones[d.ID]; !ok {
		return errStubNotFound
	}
	r.distribuciones[d.ID] = d
	return nil
}

func (r *stubDistribucionRepo) Delete(_ context.Context, id uint) error {
	delete(r.distribuciones, id)
	return nil
}

func (r *stubDistribucionRepo) ListByPropietario(_ context.Context, _ uint) ([]repository.DistribucionRow, error) {
	return nil, nil
}

func (r *stubDistribucionRepo) DisponiblesVenta(_ context.Context, _ uint) ([]repository.DistribucionVentaRow, error) {
	return nil, nil
}

func (r *stubDistribucionRepo) DisponiblesVentaPunto(_ context.Context, _ uint) ([]repository.DistribucionVentaRow, error) {
	return nil, nil
}

func (r *stubDistribucionRepo) Resumen(_ context.Context, _ uint, _ *uint) ([]repository.DistribucionResumenRow, error) {
	return r.resumen, nil
}

func (r *stubDistribucionRepo) Periodo(_ context.Context, _ uint, _, _ time.Time) ([]repository.DistribucionPeriodoRow, error) {
	return nil, nil
}

func (r *stubDistribucionRepo) Contador(_ context.Context, _, _ time.Time) (int64, int64, error) {
	return int64(len(r.distribuciones)), 0, nil
}

// DisponibleTx mirrors the production query: distributed quantity minus
// what the ventas already consumed.
func (r *stubDistribucionRepo) DisponibleTx(_ *gorm.DB, distribucionID uint) (decimal.Decimal, error) {
	d, ok := r.distribuciones[distribucionID]
	if !ok {
		return decimal.Zero, errStubNotFound
	}
	vendido := decimal.Zero
	if r.ventas != nil {
		for _, v := range r.ventas.ventas {
			if v.DistribucionID == distribucionID {
				vendido = vendido.Add(v.Cantidad)
			}
		}
	}
	return d.Cantidad.Sub(vendido), nil
}

func (r *stubDistribucionRepo) DB() *gorm.DB { return nil }

// ─── Factura ─────────────────────────────────────────────────────────────────

type stubFacturaRepo struct {
	facturas map[uint]*model.Factura
	nextID   uint
}

func newStubFacturaRepo() *stubFacturaRepo {
	return &stubFacturaRepo{facturas: make(map[uint]*model.Factura)}
}

func (r *stubFacturaRepo) CreateTx(_ *gorm.DB, f *model.Factura) error {
	r.nextID++
	f.ID = r.nextID
	r.facturas[f.ID] = f
	return nil
}

func (r *stubFacturaRepo) Detail(_ context.Context, id, _ uint) (*repository.FacturaDetailRow, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, errStubNotFound
	}
	return &repository.FacturaDetailRow{
		ID:              f.ID,
		Monto:           f.Monto,
		PagoElectronico: f.PagoElectronico,
		NoOperacion:     f.NoOperacion,
		Ventas:          f.Ventas,
		Fecha:           f.Fecha,
	}, nil
}

func (r *stubFacturaRepo) ListByPropietario(_ context.Context, _ uint) ([]repository.FacturaRow, error) {
	out := make([]repository.FacturaRow, 0, len(r.facturas))
	for _, f := range r.facturas {
		out = append(out, repository.FacturaRow{ID: f.ID, Monto: f.Monto, Fecha: f.Fecha})
	}
	return out, nil
}

func (r *stubFacturaRepo) FindScopedPropietario(_ context.Context, id, _ uint) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, errStubNotFound
	}
	return f, nil
}

func (r *stubFacturaRepo) FindScopedDependiente(_ context.Context, id, puntoID uint) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok || f.PuntoID != puntoID {
		return nil, errStubNotFound
	}
	return f, nil
}

func (r *stubFacturaRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.facturas, id)
	return nil
}

func (r *stubFacturaRepo) DB() *gorm.DB { return nil }

// ─── Venta ───────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas             map[uint]*model.Venta
	listRows           []repository.VentaListRow
	porProductoTotal   []repository.VentaPorProductoRow
	porProductoPeriodo []repository.VentaPorProductoRow
	brutas             []repository.MontoPorDiaRow
	utilidades         []repository.VentaUtilidadRow
	autorizaProp       bool
	autorizaDep        bool
	nextID             uint
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uint]*model.Venta), autorizaProp: true, autorizaDep: true}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	r.nextID++
	v.ID = r.nextID
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uint) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errStubNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) Detail(_ context.Context, _, _ uint) (*repository.VentaDetailRow, error) {
	return nil, errStubNotFound
}

func (r *stubVentaRepo) Update(_ context.Context, v *model.Venta) error {
	if _, ok := r.ventas[v.ID]; !ok {
		return errStubNotFound
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) Delete(_ context.Context, id uint) error {
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) FindScopedPropietario(_ context.Context, id, _ uint) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errStubNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) FindScopedDependiente(_ context.Context, id, puntoID, usuarioID uint) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok || v.PuntoID != puntoID || v.UsuarioID != usuarioID {
		return nil, errStubNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) ListByPropietario(_ context.Context, _ uint) ([]repository.VentaListRow, error) {
	return r.listRows, nil
}

func (r *stubVentaRepo) ListByPunto(_ context.Context, _ uint) ([]repository.VentaListRow, error) {
	return r.listRows, nil
}

func (r *stubVentaRepo) VentasPorProducto(_ context.Context, _ uint, _ *uint, inicio, _ *time.Time) ([]repository.VentaPorProductoRow, error) {
	if inicio != nil {
		return r.porProductoPeriodo, nil
	}
	return r.porProductoTotal, nil
}

func (r *stubVentaRepo) Periodo(_ context.Context, _ uint, _, _ time.Time) ([]repository.VentaPorProductoRow, error) {
	return r.porProductoPeriodo, nil
}

func (r *stubVentaRepo) BrutasPeriodo(_ context.Context, _ uint, _, _ time.Time) ([]repository.MontoPorDiaRow, error) {
	return r.brutas, nil
}

func (r *stubVentaRepo) UtilidadesPeriodo(_ context.Context, _ uint, _, _ time.Time) ([]repository.VentaUtilidadRow, error) {
	return r.utilidades, nil
}

func (r *stubVentaRepo) Contador(_ context.Context, _, _ time.Time) (int64, int64, error) {
	return int64(len(r.ventas)), 0, nil
}

func (r *stubVentaRepo) AutorizaPropietario(_ context.Context, _, _, _ uint) (bool, error) {
	return r.autorizaProp, nil
}

func (r *stubVentaRepo) AutorizaDependiente(_ context.Context, _, _ uint) (bool, error) {
	return r.autorizaDep, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var (
	_ repository.UsuarioRepository      = (*stubUsuarioRepo)(nil)
	_ repository.NegocioRepository      = (*stubNegocioRepo)(nil)
	_ repository.PuntoRepository        = (*stubPuntoRepo)(nil)
	_ repository.ProductoRepository     = (*stubProductoRepo)(nil)
	_ repository.InventarioRepository   = (*stubInventarioRepo)(nil)
	_ repository.DistribucionRepository = (*stubDistribucionRepo)(nil)
	_ repository.VentaRepository        = (*stubVentaRepo)(nil)
	_ repository.FacturaRepository      = (*stubFacturaRepo)(nil)
)
