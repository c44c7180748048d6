package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/interopcheck/interopcheck/internal/schema"
	"github.com/interopcheck/interopcheck/internal/version"
)

const conformanceRuleID = "profile-schema-conformance"

// SARIFFormatter writes schema conformance results as SARIF 2.1.0 JSON,
// one result per finding, located at the validated profile file.
type SARIFFormatter struct {
	writer      io.Writer
	profilePath string
}

// NewSARIFFormatter creates a new SARIF formatter. profilePath names the
// profile file findings are attributed to.
func NewSARIFFormatter(w io.Writer, profilePath string) *SARIFFormatter {
	return &SARIFFormatter{
		writer:      w,
		profilePath: profilePath,
	}
}

// Format writes the conformance result as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(result *schema.Result) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("interopcheck", "https://github.com/interopcheck/interopcheck")
	toolVersion := version.Get().Version
	run.Tool.Driver.Version = &toolVersion

	rule := sarif.NewReportingDescriptor().WithID(conformanceRuleID)
	rule.WithName("ProfileSchemaConformance")
	shortDesc := "Profile document conforms to its governing JSON schema"
	rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &shortDesc})
	rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "error"})
	run.Tool.Driver.AddRule(rule)

	for _, finding := range result.Findings {
		sarifResult := sarif.NewRuleResult(conformanceRuleID)
		sarifResult.Level = "error"
		sarifResult.Kind = "fail"
		sarifResult.Message = sarif.NewTextMessage(
			fmt.Sprintf("%s: %s", finding.InstanceLocation, finding.Message))

		if f.profilePath != "" {
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().WithArtifactLocation(
					sarif.NewArtifactLocation().WithURI(f.profilePath)))
			sarifResult.Locations = []*sarif.Location{location}
		}

		props := sarif.NewPropertyBag()
		props.Add("instanceLocation", finding.InstanceLocation)
		props.Add("keywordLocation", finding.KeywordLocation)
		sarifResult.WithProperties(props)

		run.AddResult(sarifResult)
	}

	report.AddRun(run)

	if err := report.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}
	_, err := f.writer.Write([]byte("\n"))
	return err
}
