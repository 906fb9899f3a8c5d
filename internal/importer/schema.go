package importer

// csvSchema maps the fixed column positions of the semicolon-delimited
// training-log export. The layout is rigid: exports with a different column
// order will misparse, so the version is recorded with the indices to give
// future layouts somewhere to live.
type csvSchema struct {
	version         string
	delimiter       string
	minColumns      int
	date            int
	name            int
	duration        int
	distance        int
	elevation       int
	normalizedPower int
	tss             int
	cadence         int
	speed           int
	heartRate       int
	power           int
	peak5Min        int
	peak20Min       int
	peak60Min       int
}

// schemaV1 is the only layout currently in the wild.
var schemaV1 = csvSchema{
	version:         "v1",
	delimiter:       ";",
	minColumns:      5,
	date:            0,
	name:            1,
	duration:        3,
	distance:        5,
	elevation:       6,
	normalizedPower: 8,
	tss:             11,
	cadence:         16,
	speed:           17,
	heartRate:       18,
	power:           19,
	peak5Min:        24,
	peak20Min:       25,
	peak60Min:       26,
}
