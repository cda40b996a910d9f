package pkdataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

var (
	ErrMissingColumn = errors.New("required column not found in header")
	ErrNoHeader      = errors.New("dataset has no header row")
)

// CSVOptions maps dataset columns to the fields the reader needs. The
// defaults follow the NONMEM convention of ID/TIME/DV with dose rows
// flagged by EVID=1 and the dose amount in AMT.
type CSVOptions struct {
	IDColumn     string
	TimeColumn   string
	ConcColumn   string
	AmtColumn    string
	EvidColumn   string
	WeightColumn string

	// MissingToken marks a missing observation, "." by convention.
	// Matching concentrations are read as NaN and left for the caller
	// to drop or impute.
	MissingToken string
}

func NewDefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		IDColumn:     "ID",
		TimeColumn:   "TIME",
		ConcColumn:   "DV",
		AmtColumn:    "AMT",
		EvidColumn:   "EVID",
		WeightColumn: "WT",
		MissingToken: ".",
	}
}

// ReadCSV parses a NONMEM-style dataset into per-subject profiles. Dose
// rows set the subject dose and contribute no observation. Rows are
// expected to be grouped by subject and time-ordered within a subject, as
// profile validation will reject anything non-monotonic.
func ReadCSV(r io.Reader, opt *CSVOptions) ([]SubjectData, error) {
	if opt == nil {
		opt = NewDefaultCSVOptions()
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read dataset header, %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{opt.IDColumn, opt.TimeColumn, opt.ConcColumn} {
		if _, exists := col[required]; !exists {
			return nil, fmt.Errorf("%s, %w", required, ErrMissingColumn)
		}
	}

	type rawSubject struct {
		subject  Subject
		doseSeen bool
		t        []float64
		c        []float64
	}

	var order []string
	subjects := make(map[string]*rawSubject)

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read dataset row, %w", err)
		}
		line++

		id := record[col[opt.IDColumn]]
		rs, exists := subjects[id]
		if !exists {
			rs = &rawSubject{subject: Subject{ID: id}}
			subjects[id] = rs
			order = append(order, id)
		}

		if wIdx, ok := col[opt.WeightColumn]; ok && rs.subject.Weight == 0 {
			if w, err := strconv.ParseFloat(record[wIdx], 64); err == nil {
				rs.subject.Weight = w
			}
		}

		if isDoseRow(record, col, opt) {
			if aIdx, ok := col[opt.AmtColumn]; ok {
				amt, err := strconv.ParseFloat(record[aIdx], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad dose amount %q, %w", line, record[aIdx], err)
				}
				rs.subject.Dose += amt
			}
			if !rs.doseSeen {
				dt, err := strconv.ParseFloat(record[col[opt.TimeColumn]], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad dose time %q, %w", line, record[col[opt.TimeColumn]], err)
				}
				rs.subject.DoseTime = dt
				rs.doseSeen = true
			}
			continue
		}

		tVal, err := strconv.ParseFloat(record[col[opt.TimeColumn]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad time %q, %w", line, record[col[opt.TimeColumn]], err)
		}

		cRaw := record[col[opt.ConcColumn]]
		cVal := math.NaN()
		if cRaw != opt.MissingToken {
			cVal, err = strconv.ParseFloat(cRaw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad concentration %q, %w", line, cRaw, err)
			}
		}

		rs.t = append(rs.t, tVal)
		rs.c = append(rs.c, cVal)
	}

	out := make([]SubjectData, 0, len(order))
	for _, id := range order {
		rs := subjects[id]
		profile, err := NewProfile(rs.t, rs.c)
		if err != nil {
			return nil, fmt.Errorf("subject %s, %w", id, err)
		}
		out = append(out, SubjectData{Subject: rs.subject, Profile: profile})
	}
	return out, nil
}

func isDoseRow(record []string, col map[string]int, opt *CSVOptions) bool {
	if eIdx, ok := col[opt.EvidColumn]; ok {
		return record[eIdx] == "1" || record[eIdx] == "4"
	}
	// without EVID, any row carrying a positive AMT is a dose event
	if aIdx, ok := col[opt.AmtColumn]; ok {
		amt, err := strconv.ParseFloat(record[aIdx], 64)
		return err == nil && amt > 0
	}
	return false
}
