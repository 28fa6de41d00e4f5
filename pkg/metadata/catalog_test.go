package metadata

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matzehuels/initializr/pkg/errors"
	"github.com/matzehuels/initializr/pkg/version"
)

func buildTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := FromProperties(testProperties()).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return c
}

func TestCatalog_MergeIsPure(t *testing.T) {
	base := buildTestCatalog(t)
	other := New(&Configuration{})
	other.Name.Content = "other"
	other.Languages.Merge(Element{ID: "groovy", Default: true})
	other.Dependencies.Merge([]*DependencyGroup{{Name: "Ops", Content: []*Dependency{{ID: "actuator", GroupID: "g", ArtifactID: "a"}}}})

	merged := base.Merge(other)

	if merged.Name.Value() != "other" || base.Name.Value() == "other" {
		t.Errorf("name: merged %q, base %q", merged.Name.Value(), base.Name.Value())
	}
	if merged.Languages.DefaultID() != "groovy" || base.Languages.DefaultID() != "java" {
		t.Errorf("language default: merged %q, base %q", merged.Languages.DefaultID(), base.Languages.DefaultID())
	}
	if _, ok := merged.Dependencies.Get("actuator"); !ok {
		t.Error("merged catalog should contain actuator")
	}
	if _, ok := base.Dependencies.Get("actuator"); ok {
		t.Error("base catalog should be untouched")
	}
	if other.Languages.Len() != 1 {
		t.Error("source catalog should be untouched")
	}
	if !merged.HasFrameworkAxis() {
		t.Error("merge should keep the framework axis of the target")
	}
}

func TestCatalog_CloneIsDeep(t *testing.T) {
	c := buildTestCatalog(t)
	clone := c.Clone()

	clone.GroupID.Content = "changed"
	clone.PlatformVersions.Replace([]Element{{ID: "3.0.0.RELEASE"}})
	web, _ := clone.Dependencies.Get("web")
	web.ArtifactID = "changed"
	clone.Config.Env.Boms["x"] = BOM{}

	if c.GroupID.Value() == "changed" {
		t.Error("text capability shared")
	}
	if c.PlatformVersions.Len() != 3 {
		t.Error("platform versions shared")
	}
	if orig, _ := c.Dependencies.Get("web"); orig.ArtifactID != "starter-web" {
		t.Error("dependencies shared")
	}
	if _, ok := c.Config.Env.Boms["x"]; ok {
		t.Error("configuration shared")
	}
}

func TestCatalog_UpdatePlatformVersionsRecomputesRanges(t *testing.T) {
	c := buildTestCatalog(t)
	reactive, _ := c.Dependencies.Get("reactive")
	if !reactive.Match(version.MustParse("2.1.6.RELEASE")) {
		t.Fatal("range should start at the latest known 2.1 release")
	}

	err := c.UpdatePlatformVersions([]Element{{ID: "2.1.8.RELEASE"}, {ID: "2.1.7.RELEASE"}})
	if err != nil {
		t.Fatal(err)
	}
	if reactive.Match(version.MustParse("2.1.6.RELEASE")) {
		t.Errorf("range should follow new versions, got %s", reactive.Range())
	}
	if !reactive.Match(version.MustParse("2.1.8.RELEASE")) {
		t.Errorf("range should include 2.1.8, got %s", reactive.Range())
	}
	if c.PlatformVersions.DefaultID() != "2.1.8.RELEASE" {
		t.Errorf("default = %q, want first element", c.PlatformVersions.DefaultID())
	}
}

func TestCatalog_UpdateFrameworkVersions(t *testing.T) {
	c := buildTestCatalog(t)
	err := c.UpdateFrameworkVersions([]Element{
		{ID: "3.2.0", Bound: "2.2.0.M3"},
		{ID: "3.1.1", Bound: "2.1.6.RELEASE", Default: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.FrameworkVersions.DefaultID() != "3.1.1" {
		t.Errorf("default = %q", c.FrameworkVersions.DefaultID())
	}
	if got, ok := c.BoundPlatformVersion("3.2.0"); !ok || got != "2.2.0.M3" {
		t.Errorf("BoundPlatformVersion = %q, %v", got, ok)
	}
	if _, ok := c.BoundPlatformVersion("3.0.0"); ok {
		t.Error("replaced framework version should be gone")
	}
}

func TestCatalog_ValidateFloor(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Env.PlatformVersionFloor = "soon"
	err := New(cfg).Validate()
	if !errors.Is(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("Validate() = %v, want CONFIG_INVALID", err)
	}
	if New(nil).PlatformVersionFloor().String() != DefaultPlatformVersionFloor {
		t.Error("default floor mismatch")
	}
}

func TestDocument(t *testing.T) {
	c := buildTestCatalog(t)

	var buf bytes.Buffer
	if err := WriteDocument(&buf, c); err != nil {
		t.Fatal(err)
	}

	var doc map[string]struct {
		Type    string           `json:"type"`
		Default string           `json:"default"`
		Values  []map[string]any `json:"values"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("document is not JSON: %v", err)
	}

	if got := doc[IDPlatformVersion]; got.Type != TypeSingleSelect || got.Default != "2.1.6.RELEASE" || len(got.Values) != 3 {
		t.Errorf("bootVersion = %+v", got)
	}
	fw := doc[IDFrameworkVersion]
	if len(fw.Values) != 2 || fw.Values[0]["boundVersionId"] != "2.1.6.RELEASE" {
		t.Errorf("frameworkVersion = %+v", fw)
	}
	if _, ok := doc[IDPlatformVersion].Values[0]["boundVersionId"]; ok {
		t.Error("platform versions should not carry a bound version")
	}
	deps := doc[IDDependencies]
	if deps.Values[0]["groupId"] != "org.acme.boot" || deps.Values[0]["description"] != "Web applications" {
		t.Errorf("dependencies = %+v", deps.Values[0])
	}
	if _, ok := deps.Values[1]["description"]; ok {
		t.Error("empty description should be omitted")
	}
	if doc[IDType].Type != TypeAction || doc[IDType].Default != "maven-project" {
		t.Errorf("type = %+v", doc[IDType])
	}
	if doc[IDName].Type != TypeText || doc[IDName].Default != "demo" {
		t.Errorf("name = %+v", doc[IDName])
	}

	plain, err := NewBuilder(nil).Build()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Document(plain)[IDFrameworkVersion]; ok {
		t.Error("framework axis should be absent without the extension")
	}
}
