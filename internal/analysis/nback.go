package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/harrison/trialstats/internal/aggregate"
	"github.com/harrison/trialstats/internal/config"
	"github.com/harrison/trialstats/internal/models"
	"github.com/harrison/trialstats/internal/output"
	"github.com/harrison/trialstats/internal/parser"
)

// Output purposes for the N-back task.
const (
	NBackLoadSizePurpose = "avg_rxntime_per_loadsize"
	NBackStimulusPurpose = "avg_rxntime_per_stimulus"
)

// Column names shared by the N-back and face-matching inputs.
const (
	columnMainTrialID = "main_trial_id"
	columnTrial       = "trial"
	columnTrialType   = "trial_type"
	columnImageName   = "image_name"
	columnCorrResp    = "corr_resp"
	columnRxnTime     = "rxn_time"
	columnCondition   = "condition"
	columnAccuracy    = "percent_accuracy"
)

// PairedInput is a main task table with its reference (stimulus) table.
type PairedInput struct {
	MainPath string
	RefPath  string
	Main     *models.Table
	Ref      *models.Table
}

// LoadPaired reads a main table and its reference table.
func LoadPaired(mainPath, refPath string) (*PairedInput, error) {
	mainTable, err := parser.LoadTable(mainPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load main table: %w", err)
	}
	ref, err := parser.LoadTable(refPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference table: %w", err)
	}
	return &PairedInput{MainPath: mainPath, RefPath: refPath, Main: mainTable, Ref: ref}, nil
}

// deriveTrialID sets main_trial_id on ref from its trial column.
func deriveTrialID(ref *models.Table, derive func(trial float64) float64) error {
	trials, err := ref.Column(columnTrial)
	if err != nil {
		return fmt.Errorf("reference table: %w", err)
	}
	ids := make([]string, len(trials))
	for i, cell := range trials {
		t := models.ParseFloat(cell)
		if math.IsNaN(t) {
			return fmt.Errorf("reference table row %d: invalid %s value %q", i, columnTrial, cell)
		}
		ids[i] = strconv.FormatInt(int64(derive(t)), 10)
	}
	return ref.SetColumn(columnMainTrialID, ids)
}

func mustIndex(t *models.Table, name string) int {
	idx, _ := t.ColumnIndex(name)
	return idx
}

// renameFirstColumn names the main table's leading trial counter.
func renameFirstColumn(table *models.Table) error {
	if len(table.Header) == 0 {
		return parser.ErrEmptyTable
	}
	return table.RenameColumn(0, columnMainTrialID)
}

// AnalyzeNBack joins the N-back responses with the stimulus sequence and
// averages the correct response times per load size and overall.
func AnalyzeNBack(in *PairedInput, cfg config.NBackConfig, log Logger) (*Result, error) {
	result := &Result{Subject: output.SubjectID(in.MainPath), Trials: in.Main.Len()}

	if err := renameFirstColumn(in.Main); err != nil {
		return nil, fmt.Errorf("main table: %w", err)
	}
	ref, err := in.Ref.FilterColumn(columnTrialType, func(cell string) bool {
		return cell != cfg.SkipTrialType
	})
	if err != nil {
		return nil, fmt.Errorf("reference table: %w", err)
	}
	log.LogDebug(fmt.Sprintf("dropped %d %q rows from reference table", in.Ref.Len()-ref.Len(), cfg.SkipTrialType))
	if err := deriveTrialID(ref, func(t float64) float64 { return math.Floor(t / 2) }); err != nil {
		return nil, err
	}

	merged, err := innerJoin(in.Main, ref, columnMainTrialID)
	if err != nil {
		return nil, err
	}

	imageCol, err := resolveColumn(merged, columnImageName)
	if err != nil {
		return nil, err
	}
	corrCol, err := resolveColumn(merged, columnCorrResp)
	if err != nil {
		return nil, err
	}
	rxnCol, err := resolveColumn(merged, columnRxnTime)
	if err != nil {
		return nil, err
	}
	typeCol, err := resolveColumn(merged, columnTrialType)
	if err != nil {
		return nil, err
	}
	imageIdx, corrIdx, rxnIdx := mustIndex(merged, imageCol), mustIndex(merged, corrCol), mustIndex(merged, rxnCol)

	responses := merged.Filter(func(row []string) bool {
		if strings.HasSuffix(row[imageIdx], cfg.InstructionSuffix) {
			return false
		}
		if models.ParseFloat(row[corrIdx]) != 1 {
			return false
		}
		return !math.IsNaN(models.ParseFloat(row[rxnIdx]))
	})
	log.LogDebug(fmt.Sprintf("%d of %d joined rows are correct timed responses", responses.Len(), merged.Len()))
	if responses.Len() == 0 {
		result.warn(log, "no correct responses with a response time; averages are left empty")
	}

	byLoad, err := aggregate.GroupMean(responses, typeCol, rxnCol)
	if err != nil {
		return nil, err
	}
	perLoad := models.NewTable(columnTrialType, columnRxnTime)
	for _, g := range byLoad {
		perLoad.Rows = append(perLoad.Rows, []string{g.Key, models.FormatFloat(g.Value)})
	}
	result.add(output.FileName(result.Subject, NBackLoadSizePurpose), perLoad, false)

	rxn, err := responses.Floats(rxnCol)
	if err != nil {
		return nil, err
	}
	perStimulus := models.NewTable("Avg_rxntime_per_stimulus")
	perStimulus.Rows = append(perStimulus.Rows, []string{models.FormatFloat(aggregate.Mean(rxn))})
	result.add(output.FileName(result.Subject, NBackStimulusPurpose), perStimulus, false)

	return result, nil
}
