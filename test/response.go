package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mergington-activities/internal/global/response"

	"github.com/stretchr/testify/require"
)

// ErrorEqual 校验状态码与 detail
func ErrorEqual(t *testing.T, expected *response.Error, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, int(expected.Code), w.Code, w.Body.String())
	body := DecodeJSON[response.ResponseBody](t, w)
	require.Equal(t, expected.Message, body.Detail)
}

// NoError 校验请求成功并返回 message
func NoError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return DecodeJSON[response.Message](t, w).Message
}
