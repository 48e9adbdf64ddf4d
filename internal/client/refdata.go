package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/autointelli/intake/internal/domain"
)

// Reference is the read-only data the forms need before they are useful:
// the catalog master list and the dimension suggestions per unit of measure.
type Reference struct {
	Master     []domain.CatalogEntry
	Dimensions domain.DimensionTable
}

// Degraded reports whether part of the reference data is missing. The forms
// still run: autocomplete goes dead without a master list and the dimension
// datalist stays empty, both of which the user can see.
func (r Reference) Degraded() bool {
	return len(r.Master) == 0 || len(r.Dimensions) == 0
}

// LoadReference fetches both reference documents. Sources are URLs or plain
// file paths. Failures never abort the session; whatever loaded is returned
// alongside a joined error describing what did not.
func (c *Client) LoadReference(ctx context.Context, masterSource, dimensionsSource string) (Reference, error) {
	var ref Reference
	var errs []error

	if err := c.fetchJSON(ctx, masterSource, &ref.Master); err != nil {
		errs = append(errs, fmt.Errorf("master list: %w", err))
		c.logger.Warn("master list unavailable", zap.String("source", masterSource), zap.Error(err))
	} else {
		c.logger.Info("master list loaded", zap.Int("entries", len(ref.Master)))
	}

	if err := c.fetchJSON(ctx, dimensionsSource, &ref.Dimensions); err != nil {
		errs = append(errs, fmt.Errorf("dimension table: %w", err))
		c.logger.Warn("dimension table unavailable", zap.String("source", dimensionsSource), zap.Error(err))
	} else {
		c.logger.Info("dimension table loaded", zap.Int("units", len(ref.Dimensions)))
	}

	return ref, errors.Join(errs...)
}

// fetchJSON decodes one JSON document from an http(s) URL or a file path.
func (c *Client) fetchJSON(ctx context.Context, source string, into any) error {
	if source == "" {
		return errors.New("no source configured")
	}

	var raw []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("get %s: %w", source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("get %s: %d %s", source, resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		if raw, err = io.ReadAll(resp.Body); err != nil {
			return fmt.Errorf("read %s: %w", source, err)
		}
	} else {
		var err error
		if raw, err = os.ReadFile(source); err != nil {
			return fmt.Errorf("read %s: %w", source, err)
		}
	}

	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode %s: %w", source, err)
	}
	return nil
}
