package nca

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/openpkpd/go-nca/pkdataset"
)

// SubjectReport pairs a subject's identity and dosing with its computed
// parameters.
type SubjectReport struct {
	Subject pkdataset.Subject `json:"subject"`
	Results *Results          `json:"results"`
}

// Report is the serializable output of a study-level analysis: the options
// used and one entry per analyzed subject.
type Report struct {
	Options  *Options        `json:"options"`
	Subjects []SubjectReport `json:"subjects"`
}

// RunStudy analyzes every subject in the dataset with the given options.
// The per-subject dose from the dataset takes precedence over any dose set
// in the options.
func RunStudy(data []pkdataset.SubjectData, opt *Options) (*Report, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if err := opt.Validate(); err != nil {
		return nil, fmt.Errorf("unable to validate study options, %w", err)
	}

	report := &Report{
		Options:  opt,
		Subjects: make([]SubjectReport, 0, len(data)),
	}
	for _, sd := range data {
		subjectOpt := *opt
		if sd.Subject.Dose > 0 {
			subjectOpt.Dose = sd.Subject.Dose
		}
		a, err := New(&subjectOpt)
		if err != nil {
			return nil, err
		}
		res, err := a.RunProfile(sd.Profile)
		if err != nil {
			return nil, fmt.Errorf("subject %s, %w", sd.Subject.ID, err)
		}
		report.Subjects = append(report.Subjects, SubjectReport{
			Subject: sd.Subject,
			Results: res,
		})
	}
	return report, nil
}

// WriteJSON serializes the report with indentation for human review.
func (r *Report) WriteJSON(w io.Writer) error {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal report, %w", err)
	}
	_, err = w.Write(bytes)
	return err
}

// ReadReport loads a previously written report.
func ReadReport(r io.Reader) (*Report, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := json.Unmarshal(bytes, &report); err != nil {
		return nil, fmt.Errorf("unable to unmarshal report, %w", err)
	}
	return &report, nil
}
