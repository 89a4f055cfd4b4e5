package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/renokit/reno/models"
)

func TestFindMaterialsByNameQuery(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode([]models.Material{
			{Id: 1, Name: "Cement", UnitPrice: 50},
			{Id: 2, Name: "Cement Premium", UnitPrice: 80},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	materials, err := client.FindMaterialsByName("cement", nil, map[string]string{
		"vendor":         "BuildMart",
		"allow_archived": "true",
	})
	if err != nil {
		t.Fatalf("FindMaterialsByName failed: %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("got %d materials, want 2", len(materials))
	}

	if got := gotQuery["name"]; len(got) != 1 || got[0] != "cement" {
		t.Errorf("name query = %v, want [cement]", got)
	}
	if got := gotQuery["vendor.name"]; len(got) != 1 || got[0] != "BuildMart" {
		t.Errorf("vendor.name query = %v, want [BuildMart]", got)
	}
	if got := gotQuery["allow_archived"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("allow_archived query = %v, want [true]", got)
	}
	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "1000" {
		t.Errorf("limit query = %v, want [1000]", got)
	}
}

func TestFindMaterialsByNameWildcardOmitsName(t *testing.T) {
	var sawName bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawName = r.URL.Query()["name"]
		_ = json.NewEncoder(w).Encode([]models.Material{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if _, err := client.FindMaterialsByName("*", nil, nil); err != nil {
		t.Fatalf("FindMaterialsByName failed: %v", err)
	}
	if sawName {
		t.Error("wildcard search should not send a name param")
	}
}

func TestFindMaterialsByNameAppliesFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Material{
			{Id: 1, Name: "Grout", UnitPrice: 10},
			{Id: 2, Name: "Marble", UnitPrice: 900},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	cheap := func(m models.Material) bool { return m.UnitPrice < 100 }
	materials, err := client.FindMaterialsByName("*", cheap, nil)
	if err != nil {
		t.Fatalf("FindMaterialsByName failed: %v", err)
	}
	if len(materials) != 1 || materials[0].Id != 1 {
		t.Errorf("filter kept %v, want only material 1", materials)
	}
}

func TestFindMaterialByIdNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FindMaterialById(99)
	if !errors.Is(err, ErrMaterialNotFound) {
		t.Errorf("expected ErrMaterialNotFound, got %v", err)
	}
}

func TestGetPhase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/phase/3" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(models.Phase{
			Id:   3,
			Name: "Kitchen Flooring",
			Materials: []models.PhaseMaterial{
				{Id: 7, MaterialId: 42, Name: "Cement", Quantity: 2, UnitPrice: 50},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	phase, err := client.GetPhase(3)
	if err != nil {
		t.Fatalf("GetPhase failed: %v", err)
	}
	if phase.Name != "Kitchen Flooring" || len(phase.Materials) != 1 {
		t.Errorf("unexpected phase: %+v", phase)
	}
	if phase.MaterialTotal() != 100 {
		t.Errorf("MaterialTotal = %f, want 100", phase.MaterialTotal())
	}
}

func TestGetPhaseNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetPhase(404)
	if !errors.Is(err, ErrPhaseNotFound) {
		t.Errorf("expected ErrPhaseNotFound, got %v", err)
	}
}

func TestUpdatePhaseMaterial(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.UpdatePhaseMaterial(7, 3); err != nil {
		t.Fatalf("UpdatePhaseMaterial failed: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	if gotPath != "/api/v1/phase-material/7" {
		t.Errorf("path = %s, want /api/v1/phase-material/7", gotPath)
	}
	if gotBody["quantity"] != 3 {
		t.Errorf("body quantity = %d, want 3", gotBody["quantity"])
	}
}

func TestUpdatePhaseMaterialRejectsNonPositive(t *testing.T) {
	client := NewClient("http://unused.invalid")
	for _, qty := range []int{0, -1} {
		if err := client.UpdatePhaseMaterial(7, qty); err == nil {
			t.Errorf("UpdatePhaseMaterial(7, %d) should fail before reaching the wire", qty)
		}
	}
}

func TestDeletePhaseMaterial(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.DeletePhaseMaterial(7); err != nil {
		t.Fatalf("DeletePhaseMaterial failed: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v1/phase-material/7" {
		t.Errorf("got %s %s, want DELETE /api/v1/phase-material/7", gotMethod, gotPath)
	}
}

func TestAddPhaseMaterialsBatch(t *testing.T) {
	var gotPath string
	var gotBatch []map[string]int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBatch)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	items := []models.ChosenItem{
		{MaterialID: 42, Name: "Cement", Quantity: 3},
		{MaterialID: 7, Name: "Sand", Quantity: 1},
	}
	if err := client.AddPhaseMaterials(12, items); err != nil {
		t.Fatalf("AddPhaseMaterials failed: %v", err)
	}

	if gotPath != "/api/v1/phase/12/material" {
		t.Errorf("path = %s, want /api/v1/phase/12/material", gotPath)
	}
	if len(gotBatch) != 2 {
		t.Fatalf("batch length = %d, want 2", len(gotBatch))
	}
	if gotBatch[0]["material_id"] != 42 || gotBatch[0]["quantity"] != 3 {
		t.Errorf("batch[0] = %v, want material 42 x3", gotBatch[0])
	}
}

func TestAddPhaseMaterialsValidation(t *testing.T) {
	client := NewClient("http://unused.invalid")

	if err := client.AddPhaseMaterials(1, nil); err == nil {
		t.Error("empty batch should fail")
	}
	bad := []models.ChosenItem{{MaterialID: 1, Quantity: 0}}
	if err := client.AddPhaseMaterials(1, bad); err == nil {
		t.Error("zero-quantity item should fail before reaching the wire")
	}
}

func TestAddPhaseMaterialsPhaseNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	items := []models.ChosenItem{{MaterialID: 1, Quantity: 1}}
	if !errors.Is(client.AddPhaseMaterials(99, items), ErrPhaseNotFound) {
		t.Error("expected ErrPhaseNotFound")
	}
}

func TestListProjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "Flat 4B" {
			t.Errorf("name query = %q, want %q", got, "Flat 4B")
		}
		_ = json.NewEncoder(w).Encode([]models.Project{
			{Id: 1, Name: "Flat 4B"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	projects, err := client.ListProjects("Flat 4B")
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}
	// Status is defaulted for projects the backend returns without one
	if projects[0].Status == "" {
		t.Error("expected a defaulted status on the returned project")
	}
}
