package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/trialstats/internal/config"
)

const nbackMainCSV = `trials.thisN,corr_resp,rxn_time
0,1,0.9
1,1,0.5
2,0,0.9
3,1,
4,1,0.75
`

const nbackRefCSV = `trial,trial_type,image_name,corr_resp
0,fix,fix.jpg,0
1,instr,2back_instr.jpg,0
2,fix,fix.jpg,0
3,1back,a.jpg,1
5,1back,b.jpg,1
7,2back,c.jpg,0
9,2back,d.jpg,1
`

func nbackInput(t *testing.T, ref string) *PairedInput {
	t.Helper()
	return &PairedInput{
		MainPath: "AA06LC00_Nback_2021_Jun_09_1034.csv",
		RefPath:  "nback_AB.csv",
		Main:     mustTable(t, nbackMainCSV),
		Ref:      mustTable(t, ref),
	}
}

func TestAnalyzeNBack(t *testing.T) {
	log := &recordingLogger{}
	result, err := AnalyzeNBack(nbackInput(t, nbackRefCSV), config.DefaultConfig().NBack, log)
	require.NoError(t, err)

	assert.Equal(t, "AA06LC00", result.Subject)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Files, 2)

	perLoad := fileByName(t, result, "AA06LC00_avg_rxntime_per_loadsize.csv")
	assert.Equal(t, []string{"trial_type", "rxn_time"}, perLoad.Header)
	assert.Equal(t, [][]string{{"1back", "0.5"}, {"2back", "0.75"}}, perLoad.Rows)

	perStimulus := fileByName(t, result, "AA06LC00_avg_rxntime_per_stimulus.csv")
	assert.Equal(t, []string{"Avg_rxntime_per_stimulus"}, perStimulus.Header)
	assert.Equal(t, [][]string{{"0.625"}}, perStimulus.Rows)
}

func TestAnalyzeNBackNoResponses(t *testing.T) {
	ref := `trial,trial_type,image_name,corr_resp
0,fix,fix.jpg,0
1,instr,2back_instr.jpg,0
`
	result, err := AnalyzeNBack(nbackInput(t, ref), config.DefaultConfig().NBack, &recordingLogger{})
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Empty(t, fileByName(t, result, "AA06LC00_avg_rxntime_per_loadsize.csv").Rows)
	assert.Equal(t, [][]string{{""}}, fileByName(t, result, "AA06LC00_avg_rxntime_per_stimulus.csv").Rows)
}

func TestAnalyzeNBackErrors(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{name: "missing trial_type", ref: "trial,image_name,corr_resp\n1,a.jpg,1\n"},
		{name: "missing trial", ref: "trial_type,image_name,corr_resp\n1back,a.jpg,1\n"},
		{name: "invalid trial", ref: "trial,trial_type,image_name,corr_resp\nx,1back,a.jpg,1\n"},
		{name: "missing image_name", ref: "trial,trial_type,corr_resp\n3,1back,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AnalyzeNBack(nbackInput(t, tt.ref), config.DefaultConfig().NBack, &recordingLogger{})
			assert.Error(t, err)
		})
	}
}
