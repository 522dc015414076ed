package classify

// Stage is a column of the mood → genre → texture → dance → phase flow.
type Stage int

const (
	StageMood Stage = iota
	StageGenre
	StageTexture
	StageDance
	StagePhase

	NumStages = 5
)

var stageNames = [NumStages]string{"mood", "genre", "texture", "danceability", "phase"}

func (s Stage) String() string {
	if s < 0 || s >= NumStages {
		return "unknown"
	}
	return stageNames[s]
}

// stageLabels is the static label universe, per stage, in declared order.
var stageLabels = func() [NumStages][]string {
	var out [NumStages][]string
	for _, m := range Moods {
		out[StageMood] = append(out[StageMood], string(m))
	}
	for _, g := range GenreFamilies {
		out[StageGenre] = append(out[StageGenre], string(g))
	}
	for _, t := range Textures {
		out[StageTexture] = append(out[StageTexture], string(t))
	}
	for _, d := range DanceTiers {
		out[StageDance] = append(out[StageDance], string(d))
	}
	for _, p := range Phases {
		out[StagePhase] = append(out[StagePhase], string(p))
	}
	return out
}()

type labelPos struct {
	stage Stage
	order int
}

var labelIndex = func() map[string]labelPos {
	idx := make(map[string]labelPos)
	for st, labels := range stageLabels {
		for i, l := range labels {
			idx[l] = labelPos{stage: Stage(st), order: i}
		}
	}
	return idx
}()

// Labels returns the labels of a stage in declared order.
func Labels(stage Stage) []string {
	if stage < 0 || stage >= NumStages {
		return nil
	}
	return append([]string(nil), stageLabels[stage]...)
}

// StageOf returns the stage a label belongs to. Labels are unique across stages.
func StageOf(label string) (Stage, bool) {
	pos, ok := labelIndex[label]
	return pos.stage, ok
}

// LabelOrder returns the declared position of a label within its stage,
// or -1 if the label is unknown.
func LabelOrder(label string) int {
	pos, ok := labelIndex[label]
	if !ok {
		return -1
	}
	return pos.order
}

// UniverseSize is the total number of flow labels.
func UniverseSize() int {
	return len(labelIndex)
}
