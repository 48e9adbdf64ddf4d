package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Solicitud is one purchasing-dashboard row: an already submitted request
// whose status the purchasing team moves through the workflow.
type Solicitud struct {
	PageID    string `json:"page_id"`
	Folio     string `json:"folio"`
	Requester string `json:"nombre_solicitante"`
	Project   string `json:"proyecto"`
	Date      string `json:"fecha_solicitud"`
	Status    string `json:"estatus"`
}

// LoadSolicitudes fetches the dashboard rows from an http(s) URL or a file
// path. The dashboard is unusable without them, so unlike the reference
// documents a failure here is returned as a hard error.
func (c *Client) LoadSolicitudes(ctx context.Context, source string) ([]Solicitud, error) {
	var rows []Solicitud
	if err := c.fetchJSON(ctx, source, &rows); err != nil {
		return nil, fmt.Errorf("solicitudes: %w", err)
	}
	c.logger.Info("solicitudes loaded", zap.Int("rows", len(rows)))
	return rows, nil
}
