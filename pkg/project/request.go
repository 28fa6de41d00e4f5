package project

// Request holds the user-supplied settings of a project. Blank fields are
// left to the catalog defaults.
type Request struct {
	GroupID          string   `json:"groupId,omitempty"`
	ArtifactID       string   `json:"artifactId,omitempty"`
	Version          string   `json:"version,omitempty"`
	Name             string   `json:"name,omitempty"`
	Description      string   `json:"description,omitempty"`
	PackageName      string   `json:"packageName,omitempty"`
	ApplicationName  string   `json:"applicationName,omitempty"`
	BaseDir          string   `json:"baseDir,omitempty"`
	Language         string   `json:"language,omitempty"`
	JavaVersion      string   `json:"javaVersion,omitempty"`
	Packaging        string   `json:"packaging,omitempty"`
	Type             string   `json:"type,omitempty"`
	PlatformVersion  string   `json:"bootVersion,omitempty"`
	FrameworkVersion string   `json:"frameworkVersion,omitempty"`
	Dependencies     []string `json:"dependencies,omitempty"`
	Style            []string `json:"style,omitempty"`
}

// EffectiveDependencies returns Style when set, Dependencies otherwise.
func (r *Request) EffectiveDependencies() []string {
	if len(r.Style) > 0 {
		return r.Style
	}
	return r.Dependencies
}
