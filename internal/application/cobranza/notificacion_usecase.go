package cobranza

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/alianzanet/gestion-api/internal/application/dto"
	"github.com/alianzanet/gestion-api/internal/application/ports"
	"github.com/alianzanet/gestion-api/internal/domain"
	"github.com/alianzanet/gestion-api/internal/domain/cartera"
)

// EnviarRecordatorios despacha el recordatorio de pago a los morosos del mes.
// El despacho exige Confirmado=true; cada destinatario se resuelve de forma
// independiente (un fallo no detiene al resto) y los envíos corren en
// paralelo acotados por la concurrencia configurada.
//
// Se omiten los clientes sin correo y, salvo Forzar, los notificados en los
// últimos 30 días. Cada envío exitoso estampa ultima_notificacion.
func (uc *UseCase) EnviarRecordatorios(ctx context.Context, in dto.EnviarRecordatoriosRequest) (*dto.ResultadoDispatch, error) {
	if !in.Confirmado {
		return nil, domain.ErrConfirmacionRequerida
	}
	mes, err := uc.mesReferencia(in.Mes)
	if err != nil {
		return nil, err
	}

	hoy := uc.ahora()
	morosos, err := uc.clasificar(ctx, mes, hoy)
	if err != nil {
		return nil, err
	}
	morosos = filtrarPorIDs(morosos, in.ClienteIDs)

	detalle := make([]dto.ResultadoEnvio, len(morosos))
	sem := semaphore.NewWeighted(uc.concurrencia)
	var wg sync.WaitGroup

	for i, m := range morosos {
		detalle[i] = dto.ResultadoEnvio{ClienteID: m.Cliente.ID, Nombre: m.Cliente.Nombre}

		if m.Cliente.Correo == "" {
			detalle[i].Omitido = true
			detalle[i].Motivo = "sin correo"
			continue
		}
		if !in.Forzar && cartera.EnEnfriamiento(m.Cliente.UltimaNotificacion, hoy) {
			detalle[i].Omitido = true
			detalle[i].Motivo = "notificado en los últimos 30 días"
			continue
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			detalle[i].Motivo = err.Error()
			continue
		}
		wg.Add(1)
		go func(i int, m cartera.Morosidad) {
			defer wg.Done()
			defer sem.Release(1)
			detalle[i] = uc.enviarRecordatorio(ctx, mes, hoy, m)
		}(i, m)
	}
	wg.Wait()

	res := resumen(mes, detalle)
	uc.log.Info().
		Str("mes", mes).
		Int("total", res.Total).
		Int("enviados", res.Enviados).
		Int("omitidos", res.Omitidos).
		Int("fallidos", res.Fallidos).
		Msg("despacho de recordatorios terminado")
	return res, nil
}

// enviarRecordatorio resuelve un solo destinatario.
func (uc *UseCase) enviarRecordatorio(ctx context.Context, mes string, hoy time.Time, m cartera.Morosidad) dto.ResultadoEnvio {
	r := dto.ResultadoEnvio{ClienteID: m.Cliente.ID, Nombre: m.Cliente.Nombre}

	cuerpo := map[string]any{
		"nombre":    m.Cliente.Nombre,
		"correo":    m.Cliente.Correo,
		"mes":       mes,
		"deuda":     cartera.FormatCOP(m.Deuda),
		"dias_mora": m.DiasMora,
		"plan":      m.Cliente.Plan,
	}
	if err := uc.notificador.Enviar(ctx, ports.AccionRecordatorio, cuerpo); err != nil {
		uc.log.Warn().Err(err).Int64("cliente_id", m.Cliente.ID).Msg("fallo el envío del recordatorio")
		r.Motivo = err.Error()
		return r
	}

	r.Enviado = true
	if err := uc.clienteRepo.MarcarNotificado(ctx, m.Cliente.ID, hoy); err != nil {
		uc.log.Warn().Err(err).Int64("cliente_id", m.Cliente.ID).Msg("no se pudo estampar ultima_notificacion")
	}
	return r
}

// EnviarReporteAdmin envía al administrador el resumen de cartera del mes:
// total de morosos, deuda acumulada y el detalle por cliente.
func (uc *UseCase) EnviarReporteAdmin(ctx context.Context, in dto.EnviarReporteRequest) (*dto.MorososResponse, error) {
	if !in.Confirmado {
		return nil, domain.ErrConfirmacionRequerida
	}
	rep, err := uc.ListarMorosos(ctx, in.Mes)
	if err != nil {
		return nil, err
	}

	filas := make([]map[string]any, 0, len(rep.Morosos))
	for _, m := range rep.Morosos {
		filas = append(filas, map[string]any{
			"nombre":    m.Cliente.Nombre,
			"dias_mora": m.DiasMora,
			"deuda":     cartera.FormatCOP(m.Deuda),
			"estado":    m.Cliente.Estado,
		})
	}
	cuerpo := map[string]any{
		"mes":         rep.Mes,
		"total":       rep.Total,
		"deuda_total": cartera.FormatCOP(rep.DeudaTotal),
		"morosos":     filas,
	}
	if err := uc.notificador.Enviar(ctx, ports.AccionReporteAdmin, cuerpo); err != nil {
		return nil, err
	}
	return rep, nil
}

// EscalarCriticos notifica la suspensión a los morosos críticos (más de 60
// días) que no estén en enfriamiento. Lo invoca el scheduler diario; también
// puede dispararse a mano.
func (uc *UseCase) EscalarCriticos(ctx context.Context) (*dto.ResultadoDispatch, error) {
	hoy := uc.ahora()
	mes := cartera.MesActual(hoy)

	morosos, err := uc.clasificar(ctx, mes, hoy)
	if err != nil {
		return nil, err
	}

	var detalle []dto.ResultadoEnvio
	for _, m := range morosos {
		if !m.Escalable {
			continue
		}
		r := dto.ResultadoEnvio{ClienteID: m.Cliente.ID, Nombre: m.Cliente.Nombre}
		if m.Cliente.Correo == "" {
			r.Omitido = true
			r.Motivo = "sin correo"
			detalle = append(detalle, r)
			continue
		}
		cuerpo := map[string]any{
			"nombre":    m.Cliente.Nombre,
			"correo":    m.Cliente.Correo,
			"mes":       mes,
			"deuda":     cartera.FormatCOP(m.Deuda),
			"dias_mora": m.DiasMora,
		}
		if err := uc.notificador.Enviar(ctx, ports.AccionSuspension, cuerpo); err != nil {
			uc.log.Warn().Err(err).Int64("cliente_id", m.Cliente.ID).Msg("fallo el escalamiento")
			r.Motivo = err.Error()
			detalle = append(detalle, r)
			continue
		}
		r.Enviado = true
		if err := uc.clienteRepo.MarcarNotificado(ctx, m.Cliente.ID, hoy); err != nil {
			uc.log.Warn().Err(err).Int64("cliente_id", m.Cliente.ID).Msg("no se pudo estampar ultima_notificacion")
		}
		detalle = append(detalle, r)
	}

	res := resumen(mes, detalle)
	uc.log.Info().
		Str("mes", mes).
		Int("enviados", res.Enviados).
		Int("omitidos", res.Omitidos).
		Int("fallidos", res.Fallidos).
		Msg("escalamiento de críticos terminado")
	return res, nil
}

func filtrarPorIDs(morosos []cartera.Morosidad, ids []int64) []cartera.Morosidad {
	if len(ids) == 0 {
		return morosos
	}
	quiero := make(map[int64]bool, len(ids))
	for _, id := range ids {
		quiero[id] = true
	}
	out := morosos[:0:0]
	for _, m := range morosos {
		if quiero[m.Cliente.ID] {
			out = append(out, m)
		}
	}
	return out
}

func resumen(mes string, detalle []dto.ResultadoEnvio) *dto.ResultadoDispatch {
	res := &dto.ResultadoDispatch{Mes: mes, Total: len(detalle), Detalle: detalle}
	for _, r := range detalle {
		switch {
		case r.Enviado:
			res.Enviados++
		case r.Omitido:
			res.Omitidos++
		default:
			res.Fallidos++
		}
	}
	return res
}
