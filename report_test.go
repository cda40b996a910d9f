package nca

import (
	"bytes"
	"strings"
	"testing"

	"github.com/openpkpd/go-nca/pkdataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studyFixture(t *testing.T) []pkdataset.SubjectData {
	t.Helper()

	raw := strings.Join([]string{
		"ID,TIME,DV,AMT,EVID,WT",
		"1,0,.,320,1,79.6",
		"1,0.25,2.84,.,0,79.6",
		"1,0.57,6.57,.,0,79.6",
		"1,1.12,10.5,.,0,79.6",
		"1,2.02,9.66,.,0,79.6",
		"1,3.82,8.58,.,0,79.6",
		"1,5.1,8.36,.,0,79.6",
		"1,7.03,7.47,.,0,79.6",
		"1,9.05,6.89,.,0,79.6",
		"1,12.12,5.94,.,0,79.6",
		"1,24.37,3.28,.,0,79.6",
		"2,0,.,320,1,72.4",
		"2,0.27,1.72,.,0,72.4",
		"2,0.52,7.91,.,0,72.4",
		"2,1.0,8.31,.,0,72.4",
		"2,1.92,8.33,.,0,72.4",
		"2,3.5,6.85,.,0,72.4",
		"2,5.02,6.08,.,0,72.4",
		"2,7.03,5.4,.,0,72.4",
		"2,9.0,4.55,.,0,72.4",
		"2,12.0,3.01,.,0,72.4",
		"2,24.3,0.9,.,0,72.4",
	}, "\n")

	data, err := pkdataset.ReadCSV(strings.NewReader(raw), nil)
	require.NoError(t, err)
	return data
}

func TestRunStudy(t *testing.T) {
	data := studyFixture(t)

	report, err := RunStudy(data, nil)
	require.NoError(t, err)
	require.Len(t, report.Subjects, 2)

	for _, sr := range report.Subjects {
		assert.Equal(t, 320.0, sr.Results.Dose)
		assert.Greater(t, sr.Results.AUCLast, 0.0)
		require.NotNil(t, sr.Results.Terminal)
		assert.True(t, sr.Results.CLF.Defined())
	}

	// subject 2 keeps eliminating faster out to 24h
	assert.Greater(t,
		report.Subjects[0].Results.AUCLast,
		report.Subjects[1].Results.AUCLast,
	)
}

func TestRunStudyInvalidOptions(t *testing.T) {
	data := studyFixture(t)
	_, err := RunStudy(data, &Options{Method: "simpson"})
	assert.ErrorIs(t, err, ErrUnknownAUCMethod)
}

func TestReportJSONRoundTrip(t *testing.T) {
	data := studyFixture(t)
	report, err := RunStudy(data, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf))

	next, err := ReadReport(&buf)
	require.NoError(t, err)
	assert.Equal(t, report, next)
}

func TestReportJSONUndefinedMetrics(t *testing.T) {
	// a rising profile leaves the terminal metrics undefined, which must
	// serialize as null rather than fail on NaN
	p, err := pkdataset.NewProfile([]float64{0, 1, 2, 3}, []float64{1, 2, 4, 8})
	require.NoError(t, err)

	report, err := RunStudy([]pkdataset.SubjectData{
		{Subject: pkdataset.Subject{ID: "1"}, Profile: p},
	}, &Options{Method: AUCLinear})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"auc_inf": null`)

	next, err := ReadReport(&buf)
	require.NoError(t, err)
	require.Len(t, next.Subjects, 1)
	assert.False(t, next.Subjects[0].Results.AUCInf.Defined())
	assert.False(t, next.Subjects[0].Results.CLF.Defined())
}
