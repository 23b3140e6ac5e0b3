package about

const (
	TabSkills         = "skills"
	TabEducation      = "education"
	TabCertifications = "certifications"
)

var defaultCatalog = MustCatalog(
	Entry{
		ID:    TabSkills,
		Title: "Skills",
		Content: Bullets(
			"AWS Cloud Infrastructure",
			"CI/CD Pipelines",
			"Kubernetes",
			"Terraform",
			"Prometheus and Grafana",
			"Ansible",
		),
	},
	Entry{
		ID:    TabEducation,
		Title: "Education",
		Content: Bullets(
			"Master of Electrical Engineering and IT",
			"Technische Hochschule Deggendorf",
		),
	},
	Entry{
		ID:    TabCertifications,
		Title: "Certifications",
		Content: Bullets(
			"AWS Certified Solutions Architect - Associate",
		),
	},
)

// Default returns the compiled-in catalog. It is shared and never mutated.
func Default() *Catalog {
	return defaultCatalog
}
