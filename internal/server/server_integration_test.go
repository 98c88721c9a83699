package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/predict"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "model.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	thumbs := landmark.ThumbsUpSet()
	_, err = gesture.SaveTemplate(s, "thumbs_up", thumbs.Normalize(), 0, [][]float64{thumbs.Flatten()})
	require.NoError(t, err)
	palm := landmark.OpenPalmSet()
	_, err = gesture.SaveTemplate(s, "open_palm", palm.Normalize(), 0, [][]float64{palm.Flatten()})
	require.NoError(t, err)

	templates, err := gesture.LoadTemplates(s)
	require.NoError(t, err)

	classifier := gesture.NewTemplateClassifier(templates, gesture.WithMaxResults(3))
	labels := gesture.NewLabelMap(map[string]string{"open_palm": "Open Palm"})

	srv := New(Config{
		Predictor: predict.New(classifier, predict.WithLabels(labels)),
		Store:     s,
		Templates: classifier.Len(),
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return srv, ts
}

func frames(set landmark.Set, n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = set.Flatten()
	}
	return out
}

func requestBody(t *testing.T, f [][]float64) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{"landmarks": f})
	require.NoError(t, err)
	return data
}

func TestAPI_PredictWorkflow(t *testing.T) {
	_, ts := newTestServer(t)
	client := ts.Client()

	// 1. Health reports the loaded templates
	resp, err := client.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	var health healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 2, health.Templates)

	// 2. List the model
	resp, err = client.Get(ts.URL + "/api/gestures")
	require.NoError(t, err)
	var listed struct {
		Gestures []struct {
			Name    string `json:"name"`
			Samples int    `json:"samples"`
		} `json:"gestures"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	resp.Body.Close()
	require.Len(t, listed.Gestures, 2)
	assert.Equal(t, "open_palm", listed.Gestures[0].Name)
	assert.Equal(t, 1, listed.Gestures[0].Samples)

	// 3. Predict a thumbs up batch
	resp, err = client.Post(ts.URL+"/predict", "application/json",
		bytes.NewReader(requestBody(t, frames(landmark.ThumbsUpSet(), 30))))
	require.NoError(t, err)
	var prediction map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&prediction))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"prediction": "thumbs_up"}, prediction)

	// 4. Mapped labels are applied to the winner
	mixed := append(frames(landmark.OpenPalmSet(), 16), frames(landmark.ThumbsUpSet(), 14)...)
	resp, err = client.Post(ts.URL+"/predict", "application/json", bytes.NewReader(requestBody(t, mixed)))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&prediction))
	resp.Body.Close()
	assert.Equal(t, "Open Palm", prediction["prediction"])

	// 5. Validation errors
	resp, err = client.Post(ts.URL+"/predict", "application/json",
		bytes.NewReader(requestBody(t, frames(landmark.ThumbsUpSet(), 10))))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&prediction))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, predict.MsgWrongFrameCount, prediction["error"])
}

func TestAPI_PredictWebSocket(t *testing.T) {
	srv, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/predict"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	send := func(msg []byte) api.Result {
		t.Helper()
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
		var res api.Result
		require.NoError(t, conn.ReadJSON(&res))
		return res
	}

	res := send(requestBody(t, frames(landmark.ThumbsUpSet(), 30)))
	assert.Equal(t, api.Result{Status: http.StatusOK, Prediction: "thumbs_up"}, res)

	// A bad message gets an error reply and the connection stays open.
	res = send([]byte(`{"landmarks": `))
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.True(t, strings.HasPrefix(res.Error, "Invalid JSON: "))

	res = send(requestBody(t, frames(landmark.OpenPalmSet(), 30)))
	assert.Equal(t, "Open Palm", res.Prediction)

	assert.Equal(t, 1, srv.stream.Clients())
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	srv := New(Config{ShutdownTimeout: time.Second})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunInvalidAddr(t *testing.T) {
	srv := New(Config{Addr: "256.0.0.1:bad"})
	err := srv.Run(context.Background())
	assert.Error(t, err)
}
