package registry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andeslex/casewatch/internal/registry"
	"github.com/stretchr/testify/require"
)

const testDocket = "11001310300320200012300"

func newProvider(t *testing.T, lookupBody, actuationsBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Procesos/Consulta/NumeroRadicacion", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, testDocket, r.URL.Query().Get("numero"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(lookupBody))
	})
	mux.HandleFunc("/Proceso/Actuaciones/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(actuationsBody))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchByDocket_NormalizesSnapshot(t *testing.T) {
	server := newProvider(t,
		`{"procesos":[{"idProceso":42,"despacho":"  JUZGADO 003 CIVIL   DEL CIRCUITO DE BOGOTÁ "}]}`,
		`{"actuaciones":[
			{"fechaActuacion":"2024-03-05T00:00:00","actuacion":"Notificación","anotacion":"notificación por estado"},
			{"fechaActuacion":"2024-03-01T00:00:00","actuacion":"Auto","anotacion":null,"fechaInicial":"2024-03-01","fechaFinal":"2024-03-08"}
		]}`)

	client := registry.NewClient(server.URL, nil, nil)
	snap, err := client.FetchByDocket(context.Background(), testDocket)
	require.NoError(t, err)
	require.False(t, snap.Empty())

	require.NotNil(t, snap.Forum)
	require.Equal(t, "JUZGADO 003 CIVIL DEL CIRCUITO DE BOGOTÁ", *snap.Forum)

	require.Len(t, snap.Actuations, 2)
	require.Equal(t, "notificación por estado", snap.Actuations[0].Annotation)
	require.Equal(t, "", snap.Actuations[1].Annotation)
	require.NotNil(t, snap.Actuations[1].StartDate)
	require.NotNil(t, snap.Actuations[1].EndDate)

	require.NotNil(t, snap.MostRecentDate)
	require.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *snap.MostRecentDate)
	require.Equal(t, "Notificación", snap.MostRecentType)
	require.Equal(t, "notificación por estado", snap.MostRecentDesc)
}

func TestFetchByDocket_UnknownDocketIsEmptyNotError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/Procesos/Consulta/NumeroRadicacion", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := registry.NewClient(server.URL, nil, nil)
	snap, err := client.FetchByDocket(context.Background(), testDocket)
	require.NoError(t, err)
	require.True(t, snap.Empty())
	require.Empty(t, snap.Actuations)
}

func TestFetchByDocket_EmptyProcessListIsEmptySnapshot(t *testing.T) {
	server := newProvider(t, `{"procesos":[]}`, `{}`)

	client := registry.NewClient(server.URL, nil, nil)
	snap, err := client.FetchByDocket(context.Background(), testDocket)
	require.NoError(t, err)
	require.True(t, snap.Empty())
}

func TestFetchByDocket_ServerErrorIsTemporaryFetchError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := registry.NewClient(server.URL, nil, nil)
	_, err := client.FetchByDocket(context.Background(), testDocket)
	fe, ok := registry.AsFetchError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, fe.Status)
	require.True(t, fe.Temporary())
}

func TestFetchByDocket_MalformedPayloadIsPermanentFetchError(t *testing.T) {
	server := newProvider(t, `{"procesos": "not-a-list"`, `{}`)

	client := registry.NewClient(server.URL, nil, nil)
	_, err := client.FetchByDocket(context.Background(), testDocket)
	fe, ok := registry.AsFetchError(err)
	require.True(t, ok)
	require.False(t, fe.Temporary())
}

func TestFetchByDocket_BadActuationDateIsFetchError(t *testing.T) {
	server := newProvider(t,
		`{"procesos":[{"idProceso":42,"despacho":"JUZGADO 01"}]}`,
		`{"actuaciones":[{"fechaActuacion":"03/05/2024","actuacion":"Auto"}]}`)

	client := registry.NewClient(server.URL, nil, nil)
	_, err := client.FetchByDocket(context.Background(), testDocket)
	fe, ok := registry.AsFetchError(err)
	require.True(t, ok)
	require.False(t, fe.Temporary())
}
