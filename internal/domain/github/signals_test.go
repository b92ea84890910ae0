package github

import (
	"math"
	"testing"
)

func TestAggregate_LanguageBytesExact(t *testing.T) {
	repos := []Repo{
		{Name: "svc-a", Languages: map[string]int64{"Go": 100, "HTML": 50}},
		{Name: "svc-b", Languages: map[string]int64{"Go": 300}},
	}
	sum := Aggregate(repos, DefaultConfig())

	if sum.TotalBytes != 450 {
		t.Fatalf("expected 450 total bytes, got %d", sum.TotalBytes)
	}
	if len(sum.Languages) != 2 {
		t.Fatalf("expected 2 languages, got %d", len(sum.Languages))
	}
	goStat := sum.Languages[0]
	if goStat.Name != "Go" || goStat.Bytes != 400 {
		t.Fatalf("expected Go with 400 bytes first, got %+v", goStat)
	}
	want := 400.0 / 450.0
	if goStat.Percent != want {
		t.Fatalf("expected percent %v exactly, got %v", want, goStat.Percent)
	}
}

func TestAggregate_LanguageConfidenceFormula(t *testing.T) {
	repos := []Repo{
		{Languages: map[string]int64{"Go": 400}},
		{Languages: map[string]int64{"Go": 200, "Python": 400}},
	}
	cfg := DefaultConfig()
	sum := Aggregate(repos, cfg)

	var goConf float64
	for _, l := range sum.Languages {
		if l.Name == "Go" {
			goConf = l.Confidence
		}
	}
	pct := 600.0 / 1000.0
	want := 0.7*pct + 0.3*(2.0/30.0)
	if math.Abs(goConf-want) > 1e-12 {
		t.Fatalf("expected confidence %v, got %v", want, goConf)
	}
}

func TestAggregate_LanguageConfidenceCapped(t *testing.T) {
	repos := make([]Repo, 40)
	for i := range repos {
		repos[i] = Repo{Languages: map[string]int64{"Go": 1000}}
	}
	sum := Aggregate(repos, DefaultConfig())
	if sum.Languages[0].Confidence != 1 {
		t.Fatalf("confidence must cap at 1, got %v", sum.Languages[0].Confidence)
	}
}

func TestAggregate_ToolSignals(t *testing.T) {
	repos := []Repo{
		{Name: "infra", Description: "Terraform modules", Languages: map[string]int64{"HCL": 10}},
		{Name: "deploy", Topics: []string{"terraform", "kubernetes"}},
		{Name: "app", Description: "react frontend"},
	}
	sum := Aggregate(repos, DefaultConfig())

	byName := map[string]ToolSignal{}
	for _, ts := range sum.Tools {
		byName[ts.Name] = ts
	}
	tf, ok := byName["terraform"]
	if !ok || tf.RepoCount != 2 {
		t.Fatalf("expected terraform in 2 repos, got %+v", tf)
	}
	if tf.Confidence != 2.0/5.0 {
		t.Fatalf("expected tool confidence 0.4, got %v", tf.Confidence)
	}
}

func TestAggregate_SoftSignals(t *testing.T) {
	repos := []Repo{
		{Stars: 80, Forks: 4},
		{Stars: 40, Forks: 2},
	}
	sum := Aggregate(repos, DefaultConfig())

	byName := map[string]SoftSignal{}
	for _, ss := range sum.SoftSignals {
		byName[ss.Name] = ss
	}
	pop, ok := byName["Popular Projects"]
	if !ok {
		t.Fatalf("expected Popular Projects signal with 120 total stars")
	}
	if pop.Confidence != 120.0/200.0 {
		t.Fatalf("unexpected popularity confidence %v", pop.Confidence)
	}
	collab, ok := byName["Collaboration"]
	if !ok {
		t.Fatalf("expected Collaboration signal with avg forks 3")
	}
	if collab.Confidence != 3.0/10.0 {
		t.Fatalf("unexpected collaboration confidence %v", collab.Confidence)
	}
}

func TestAggregate_Empty(t *testing.T) {
	sum := Aggregate(nil, DefaultConfig())
	if sum.TotalBytes != 0 || len(sum.Languages) != 0 || len(sum.SoftSignals) != 0 {
		t.Fatalf("expected empty summary, got %+v", sum)
	}
}

func TestCandidates_CoverAllSignals(t *testing.T) {
	repos := []Repo{
		{Name: "infra", Description: "terraform", Stars: 100, Forks: 5, Languages: map[string]int64{"Go": 100}},
	}
	sum := Aggregate(repos, DefaultConfig())
	cands := sum.Candidates()
	want := len(sum.Languages) + len(sum.Tools) + len(sum.SoftSignals)
	if len(cands) != want {
		t.Fatalf("expected %d candidates, got %d", want, len(cands))
	}
}
