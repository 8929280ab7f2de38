package actuation_test

import (
	"testing"
	"time"

	"github.com/andeslex/casewatch/internal/domain/actuation"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReconcile_FiltersKnownKeys(t *testing.T) {
	existing := actuation.KeySet{}
	existing.Add(actuation.Key{Date: "2024-03-01", Annotation: "auto admisorio"})

	incoming := []actuation.Actuation{
		{Date: day(2024, 3, 1), Type: "Auto", Annotation: "auto admisorio"},
		{Date: day(2024, 3, 5), Type: "Notificación", Annotation: "notificación por estado"},
	}

	fresh := actuation.Reconcile(existing, incoming)
	require.Len(t, fresh, 1)
	require.Equal(t, "notificación por estado", fresh[0].Annotation)
}

func TestReconcile_TypeNotPartOfIdentity(t *testing.T) {
	incoming := []actuation.Actuation{
		{Date: day(2024, 3, 1), Type: "Auto", Annotation: "traslado"},
		{Date: day(2024, 3, 1), Type: "Constancia", Annotation: "traslado"},
	}

	fresh := actuation.Reconcile(actuation.KeySet{}, incoming)
	require.Len(t, fresh, 1, "same date and annotation must be one event regardless of type")
	require.Equal(t, "Auto", fresh[0].Type)
}

func TestReconcile_EmptyAnnotationCountsAsIdentity(t *testing.T) {
	existing := actuation.KeySet{}
	existing.Add(actuation.Key{Date: "2024-03-01", Annotation: ""})

	incoming := []actuation.Actuation{
		{Date: day(2024, 3, 1), Type: "Auto", Annotation: ""},
		{Date: day(2024, 3, 1), Type: "Auto", Annotation: "con anotación"},
	}

	fresh := actuation.Reconcile(existing, incoming)
	require.Len(t, fresh, 1)
	require.Equal(t, "con anotación", fresh[0].Annotation)
}

func TestReconcile_PreservesIncomingOrder(t *testing.T) {
	incoming := []actuation.Actuation{
		{Date: day(2024, 3, 9), Annotation: "tercero"},
		{Date: day(2024, 3, 1), Annotation: "primero"},
		{Date: day(2024, 3, 5), Annotation: "segundo"},
	}

	fresh := actuation.Reconcile(actuation.KeySet{}, incoming)
	require.Len(t, fresh, 3)
	require.Equal(t, "tercero", fresh[0].Annotation)
	require.Equal(t, "primero", fresh[1].Annotation)
	require.Equal(t, "segundo", fresh[2].Annotation)
}

func TestReconcile_Idempotent(t *testing.T) {
	existing := actuation.KeySet{}
	existing.Add(actuation.Key{Date: "2024-01-10", Annotation: "fijación en lista"})

	incoming := []actuation.Actuation{
		{Date: day(2024, 1, 10), Annotation: "fijación en lista"},
		{Date: day(2024, 2, 2), Annotation: "auto que decreta pruebas"},
		{Date: day(2024, 2, 2), Annotation: "auto que decreta pruebas"},
	}

	first := actuation.Reconcile(existing, incoming)
	second := actuation.Reconcile(existing, incoming)
	require.Equal(t, first, second)
	require.Len(t, first, 1)

	// Input must not be consumed or reordered by the call.
	require.Equal(t, "fijación en lista", incoming[0].Annotation)
	require.Len(t, existing, 1, "existing key set must not be mutated")
}
