package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the result sink.
	DatabaseBackend string

	// ModelName identifies one of the two forecasting models.
	ModelName string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All sink backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// The two forecasting models.
const (
	SeasonalModel       ModelName = "seasonal"
	AutoregressiveModel ModelName = "autoregressive"
)

// Pipeline defaults.
const (
	// DefaultHorizonDays is the default forecast length.
	DefaultHorizonDays = 90

	// DefaultClusters is the default number of customer segments.
	DefaultClusters = 4

	// DefaultSeed is the default clustering seed.
	DefaultSeed = 42

	// DefaultMinHistoryDays is the minimum series span the seasonal model
	// accepts. Two full weekly cycles are required for decomposition.
	DefaultMinHistoryDays = 14

	// DefaultConfidence is the coverage of the seasonal model's bounds.
	DefaultConfidence = 0.95

	// MonetaryEpsilon is the floor applied to monetary values so the
	// log transform in segmentation stays defined.
	MonetaryEpsilon = 0.01

	// TopCustomerLimit caps the revenue leaderboard size.
	TopCustomerLimit = 100
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidSinkBackends lists all valid sink backends.
var ValidSinkBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
