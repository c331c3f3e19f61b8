package web

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/jengzang/solarmap-backend-go/internal/dashboard"
	"github.com/jengzang/solarmap-backend-go/internal/dataset/datasettest"
)

func TestIndexTemplate(t *testing.T) {
	base := datasettest.New(t, datasettest.Rows(3, "Ponta Negra", "Tirol"))
	layout := dashboard.NewLayout(base, "/api/v1/dashboard/update")

	var buf bytes.Buffer
	if err := Templates().ExecuteTemplate(&buf, IndexTemplate, layout); err != nil {
		t.Fatalf("ExecuteTemplate() error = %v", err)
	}
	page := buf.String()
	for _, want := range []string{
		`data-update-url="/api/v1/dashboard/update"`,
		`<option value="Ponta Negra">Ponta Negra</option>`,
		`<option value="roof_production">`,
		`id="card-household_per_capita_income"`,
		`id="headline-parcels">3</p>`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestClientUpdatesHeadline(t *testing.T) {
	f, err := Static().Open("/app.js")
	if err != nil {
		t.Fatalf("Open(app.js) error = %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`fill("card-", out.cards)`, `fill("headline-", out.summary)`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("app.js missing %s", want)
		}
	}
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"/app.js", "/style.css"} {
		f, err := Static().Open(name)
		if err != nil {
			t.Fatalf("Open(%s) error = %v", name, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil || len(data) == 0 {
			t.Errorf("%s: %d bytes, err = %v", name, len(data), err)
		}
	}
}
