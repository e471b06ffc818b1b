// Package errors provides the error handling and warning system used across
// the project. It is inspired by scikit-learn's warning/exception taxonomy and
// produces structured error information suitable for zerolog.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to the standard logger.
		log.Printf("imbalance-warning: %v\n", w)
	}
	// zerolog sink, installed lazily by pkg/log to avoid an import cycle.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the process-wide warning handler.
// It controls how non-fatal conditions such as ConvergenceWarning are
// surfaced.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. When a zerolog sink is installed it takes precedence
// over the plain handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	scikit-learn compatible warning types
//
// ===========================================================================

// ConvergenceWarning is emitted when an iterative optimizer reaches its
// iteration cap without meeting the stopping tolerance. It is non-fatal:
// the fitted model is still usable and execution continues.
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s failed to converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s failed to converge after %d iterations. Consider increasing max_iter or adjusting parameters.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning creates a new ConvergenceWarning.
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// UndefinedMetricWarning is emitted when an evaluation metric is ill-defined
// for the given inputs, e.g. precision when no positive predictions exist.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64 // value returned under this condition
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// NewUndefinedMetricWarning creates a new UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// DataLoadError indicates that the input dataset could not be loaded:
// missing file, malformed rows, or a missing/non-binary label column.
// It is fatal and aborts the run; loading is a one-shot operation with no
// retries.
type DataLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("imbalance: failed to load %q: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("imbalance: failed to load %q: %s", e.Path, e.Reason)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DataLoadError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("reason", e.Reason).
		Str("type", "DataLoadError")
}

// NewDataLoadError creates a new DataLoadError with a stack trace attached.
func NewDataLoadError(path, reason string, err error) error {
	loadErr := &DataLoadError{Path: path, Reason: reason, Err: err}
	return errors.WithStack(loadErr)
}

// SchemaError indicates that an expected column is absent or has the wrong
// kind (numeric vs categorical). It is fatal.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("imbalance: schema error on column %q: %s", e.Column, e.Reason)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "SchemaError")
}

// NewSchemaError creates a new SchemaError with a stack trace attached.
func NewSchemaError(column, reason string) error {
	err := &SchemaError{Column: column, Reason: reason}
	return errors.WithStack(err)
}

// InsufficientSamplesError indicates that a neighbour-based sampler cannot
// run because the minority class has fewer members than the required
// neighbour count. It is fatal to that strategy only; other strategies are
// unaffected.
type InsufficientSamplesError struct {
	Sampler   string
	Minority  int
	Neighbors int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("imbalance: %s requires at least %d minority samples for %d neighbors, got %d",
		e.Sampler, e.Neighbors+1, e.Neighbors, e.Minority)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *InsufficientSamplesError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("sampler", e.Sampler).
		Int("minority", e.Minority).
		Int("neighbors", e.Neighbors).
		Str("type", "InsufficientSamplesError")
}

// NewInsufficientSamplesError creates a new InsufficientSamplesError with a
// stack trace attached.
func NewInsufficientSamplesError(sampler string, minority, neighbors int) error {
	err := &InsufficientSamplesError{Sampler: sampler, Minority: minority, Neighbors: neighbors}
	return errors.WithStack(err)
}

// NotFittedError is returned when Predict or Transform is called on an
// estimator that has not been fitted.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("imbalance: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace attached.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when input dimensions do not match expectations.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("imbalance: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace attached.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError is returned when an argument value is invalid, e.g. a split
// ratio outside (0, 1).
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("imbalance: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace attached.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general error concerning an estimator.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("imbalance: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("imbalance: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a new ModelError with a stack trace attached.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be assigned to target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to an error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when empty data is passed in.
	ErrEmptyData = New("empty data")

	// ErrNotBinary is returned when a label vector contains values other
	// than 0 and 1.
	ErrNotBinary = New("labels must be binary (0/1)")
)
