package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/autointelli/intake/internal/domain"
)

func testDraft() *domain.Draft {
	d := domain.NewDraft()
	d.Common = domain.CommonFields{
		Requester:  "Ana",
		Project:    "P-100",
		Department: "Producción",
		Date:       "2025-03-10",
		Provider:   "Mipsa",
		Notes:      "urgente",
	}
	d.Standard.Quantity = "2"
	d.Standard.Material = "Aluminio"
	d.Standard.MaterialType = "Metal"
	d.Standard.Unit = "Placa"
	d.Standard.Dimensions.Diameter.Value = "5"
	d.Standard.Dimensions.Reconcile(domain.FieldDiameter)
	d.Standard.Dimensions.Length.Value = "20"
	d.Standard.Dimensions.Reconcile(domain.FieldLength)
	return d
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "/submit-request", "/compras/update_solicitud_status", time.Second, zap.NewNop())
}

func TestBuildPayloadStandard(t *testing.T) {
	d := testDraft()
	body, err := BuildPayload(d)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	stringFields := map[string]string{
		"nombre_solicitante":           "Ana",
		"proyecto":                     "P-100",
		"departamento_area":            "Producción",
		"fecha_solicitud":              "2025-03-10",
		"proveedor":                    "Mipsa",
		"especificaciones_adicionales": "urgente",
		"folio_solicitud":              d.Folio,
		"nombre_material":              "Aluminio",
		"tipo_material":                "Metal",
		"unidad_medida":                "Placa",
		"largo":                        "20",
		"ancho":                        "N/A",
		"alto":                         "N/A",
		"diametro":                     "5",
	}
	for key, want := range stringFields {
		if got := body[key]; got != want {
			t.Errorf("body[%q] = %v, want %q", key, got, want)
		}
	}
	if got := body["cantidad_solicitada"]; got != 2.0 {
		t.Errorf("body[cantidad_solicitada] = %v, want 2", got)
	}
	if _, present := body["torni_items"]; present {
		t.Error("standard payload must not carry torni_items")
	}
}

func TestBuildPayloadCatalog(t *testing.T) {
	d := testDraft()
	d.Mode = domain.ModeCatalog
	d.Common.Provider = domain.CatalogProvider
	d.Items = []domain.LineItem{
		{Quantity: "3", ID: "A1", Description: "Bolt M4"},
		{Quantity: "", ID: "", Description: ""}, // trailing seeded row
	}

	body, err := BuildPayload(d)
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}
	items, ok := body["torni_items"].([]linePayload)
	if !ok {
		t.Fatalf("body[torni_items] = %T, want []linePayload", body["torni_items"])
	}
	want := []linePayload{{Quantity: 3, ID: "A1", Description: "Bolt M4"}}
	if len(items) != 1 || items[0] != want[0] {
		t.Errorf("items = %v, want %v", items, want)
	}
	for _, key := range []string{"cantidad_solicitada", "nombre_material", "largo", "diametro"} {
		if _, present := body[key]; present {
			t.Errorf("catalog payload must not carry %q", key)
		}
	}
}

func TestBuildPayloadCatalogEmpty(t *testing.T) {
	d := testDraft()
	d.Mode = domain.ModeCatalog
	d.Items = []domain.LineItem{{Quantity: "0", ID: "", Description: ""}}
	if _, err := BuildPayload(d); err == nil {
		t.Error("expected error for a draft with no complete line items")
	}
}

func TestSubmitOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     Outcome
		terminal bool
	}{
		{
			name:     "success_with_link",
			status:   http.StatusOK,
			body:     `{"message":"Solicitud registrada.","notion_url":"https://notion.so/abc"}`,
			want:     Outcome{Kind: OutcomeSuccess, Message: "Solicitud registrada.", ResultURL: "https://notion.so/abc"},
			terminal: true,
		},
		{
			name:     "message_wins_over_warning",
			status:   http.StatusOK,
			body:     `{"message":"ok","warning":"parcial","error":"no"}`,
			want:     Outcome{Kind: OutcomeSuccess, Message: "ok"},
			terminal: true,
		},
		{
			name:     "warning_with_secondary_link",
			status:   http.StatusOK,
			body:     `{"warning":"Registrada parcialmente.","notion_url_db2":"https://notion.so/db2"}`,
			want:     Outcome{Kind: OutcomeWarning, Message: "Registrada parcialmente.", ResultURL: "https://notion.so/db2"},
			terminal: true,
		},
		{
			name:   "logical_error_on_2xx",
			status: http.StatusOK,
			body:   `{"error":"Proyecto no encontrado."}`,
			want:   Outcome{Kind: OutcomeError, Message: "Proyecto no encontrado."},
		},
		{
			name:   "empty_2xx_body",
			status: http.StatusOK,
			body:   `{}`,
			want:   Outcome{Kind: OutcomeError, Message: "Respuesta inesperada del servidor."},
		},
		{
			name:   "rejected_with_notion_detail",
			status: http.StatusBadRequest,
			body:   `{"error":"Datos incompletos.","notion_error":{"message":"missing property"},"details":"ignored"}`,
			want:   Outcome{Kind: OutcomeError, Message: "Datos incompletos. (Notion: missing property)"},
		},
		{
			name:   "rejected_with_details",
			status: http.StatusUnprocessableEntity,
			body:   `{"error":"Datos incompletos.","details":"cantidad inválida"}`,
			want:   Outcome{Kind: OutcomeError, Message: "Datos incompletos.: cantidad inválida"},
		},
		{
			name:   "rejected_without_error_text",
			status: http.StatusBadRequest,
			body:   `{}`,
			want:   Outcome{Kind: OutcomeError, Message: "Error: 400"},
		},
		{
			name:   "rejected_unparseable_body",
			status: http.StatusInternalServerError,
			body:   `<html>boom</html>`,
			want:   Outcome{Kind: OutcomeError, Message: "Error 500: Internal Server Error"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/submit-request" {
					t.Errorf("got %s %s, want POST /submit-request", r.Method, r.URL.Path)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q", ct)
				}
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			got, err := c.Submit(context.Background(), testDraft())
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if got != tt.want {
				t.Errorf("Submit = %+v, want %+v", got, tt.want)
			}
			if got.Terminal() != tt.terminal {
				t.Errorf("Terminal() = %v, want %v", got.Terminal(), tt.terminal)
			}
		})
	}
}

func TestSubmitNetworkFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", "/submit-request", "/status", 200*time.Millisecond, zap.NewNop())
	if _, err := c.Submit(context.Background(), testDraft()); err == nil {
		t.Error("expected a transport error for an unreachable backend")
	}
}

func TestUpdateStatus(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"message":"Estatus actualizado."}`)
	})

	msg, err := c.UpdateStatus(context.Background(), "page-123", "En Proceso")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if msg != "Estatus actualizado." {
		t.Errorf("message = %q", msg)
	}
	if want := "/compras/update_solicitud_status/page-123"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}

	props, _ := gotBody["properties"].(map[string]any)
	estatus, _ := props["Estatus"].(map[string]any)
	sel, _ := estatus["select"].(map[string]any)
	if sel["name"] != "En Proceso" {
		t.Errorf("body = %v, want properties.Estatus.select.name = En Proceso", gotBody)
	}
}

func TestUpdateStatusFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "error_with_detail",
			status: http.StatusBadGateway,
			body:   `{"error":"Notion no disponible.","notion_error_details":{"code":"rate_limited"}}`,
			want:   `Notion no disponible. Detalles: {"code":"rate_limited"}`,
		},
		{
			name:   "error_without_text",
			status: http.StatusBadGateway,
			body:   `{}`,
			want:   "Error de servidor (Status: 502)",
		},
		{
			name:   "unparseable_body",
			status: http.StatusInternalServerError,
			body:   "boom",
			want:   "Error de servidor (Status: 500). No se pudo obtener el detalle del error.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			_, err := c.UpdateStatus(context.Background(), "page-123", "Recibido")
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadReferenceFromFiles(t *testing.T) {
	dir := t.TempDir()
	master := filepath.Join(dir, "master.json")
	dims := filepath.Join(dir, "dims.json")
	os.WriteFile(master, []byte(`[{"id":"A1","description":"Bolt M4"}]`), 0o644)
	os.WriteFile(dims, []byte(`{"Placa":["100x50","200x100"]}`), 0o644)

	c := New("http://unused", "/s", "/u", time.Second, zap.NewNop())
	ref, err := c.LoadReference(context.Background(), master, dims)
	if err != nil {
		t.Fatalf("LoadReference: %v", err)
	}
	if ref.Degraded() {
		t.Errorf("reference reported degraded: %+v", ref)
	}
	if len(ref.Master) != 1 || ref.Master[0].ID != "A1" {
		t.Errorf("master = %v", ref.Master)
	}
	if got := ref.Dimensions.ForUnit("Placa"); len(got) != 2 {
		t.Errorf("dimensions for Placa = %v", got)
	}
}

func TestLoadReferenceFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/master":
			io.WriteString(w, `[{"id":"A1","description":"Bolt M4"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "/s", "/u", time.Second, zap.NewNop())
	ref, err := c.LoadReference(context.Background(), srv.URL+"/master", srv.URL+"/missing")
	if err == nil {
		t.Error("expected an error for the missing dimension table")
	}
	if len(ref.Master) != 1 {
		t.Errorf("master = %v, want the loaded list despite the other failure", ref.Master)
	}
	if !ref.Degraded() {
		t.Error("partially loaded reference should report degraded")
	}
}
