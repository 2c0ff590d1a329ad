package assessments

import (
	"context"
	"testing"

	"readiness-backend/internal/readiness"
)

func TestMemoryRepoCreateCopiesCallerData(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	info := map[string]any{"name": "Acme"}
	responses := []readiness.Answer{{QuestionID: "l1", Score: 4}}
	if err := repo.Create(ctx, Assessment{ID: "a1", CompanyInfo: info, Responses: responses}); err != nil {
		t.Fatalf("create: %v", err)
	}
	info["name"] = "Mutated"
	info["extra"] = true
	responses[0].Score = 1

	got, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompanyInfo["name"] != "Acme" || len(got.CompanyInfo) != 1 {
		t.Fatalf("stored company info changed: %v", got.CompanyInfo)
	}
	if got.Responses[0].Score != 4 {
		t.Fatalf("stored responses changed: %+v", got.Responses)
	}
}

func TestMemoryRepoReadsReturnCopies(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	if err := repo.Create(ctx, Assessment{ID: "a1", CompanyInfo: map[string]any{"name": "Acme"}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.CompanyInfo["name"] = "Mutated"

	listed, err := repo.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	listed[0].CompanyInfo["name"] = "Mutated again"

	again, err := repo.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.CompanyInfo["name"] != "Acme" {
		t.Fatalf("read copies leaked into store: %v", again.CompanyInfo)
	}
}
