package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteResponses(t *testing.T) {
	records := `{"user":{"id":12},"errors":{}}`
	chartSVG := `<svg xmlns="http://www.w3.org/2000/svg" class="chart chart-score"></svg>`
	pngMagic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

	testCases := []struct {
		name        string
		write       func(w http.ResponseWriter)
		status      int
		contentType string
		body        string
	}{
		{
			name:        "json records",
			write:       func(w http.ResponseWriter) { WriteJSONResponseOK(w, records) },
			status:      http.StatusOK,
			contentType: "application/json",
			body:        records,
		},
		{
			name:        "liveness text",
			write:       func(w http.ResponseWriter) { WriteTextResponseOK(w, "I'm OK") },
			status:      http.StatusOK,
			contentType: "text/plain; charset=utf-8",
			body:        "I'm OK",
		},
		{
			name:        "svg chart",
			write:       func(w http.ResponseWriter) { WriteResponseBytesOK(w, ContentType.SVG, []byte(chartSVG)) },
			status:      http.StatusOK,
			contentType: "image/svg+xml",
			body:        chartSVG,
		},
		{
			name:        "png chart",
			write:       func(w http.ResponseWriter) { WriteResponseBytesOK(w, ContentType.PNG, pngMagic) },
			status:      http.StatusOK,
			contentType: "image/png",
			body:        string(pngMagic),
		},
		{
			name: "error page",
			write: func(w http.ResponseWriter) {
				WriteResponse(w, ContentType.HTML, "<p>Oups !</p>", http.StatusBadGateway)
			},
			status:      http.StatusBadGateway,
			contentType: "text/html; charset=utf-8",
			body:        "<p>Oups !</p>",
		},
		{
			name:   "no content type",
			write:  func(w http.ResponseWriter) { WriteResponseBytes(w, "", nil, http.StatusNoContent) },
			status: http.StatusNoContent,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tc.write(rr)

			assert.Equal(t, tc.status, rr.Code)
			if tc.contentType != "" {
				assert.Equal(t, []string{tc.contentType}, rr.Header().Values("Content-Type"))
			}
			assert.Equal(t, tc.body, rr.Body.String())
		})
	}
}

func TestWriteResponseBytes_ReplacesContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.Header().Set("Content-Type", ContentType.Text)

	WriteResponseBytesOK(rr, ContentType.SVG, []byte("<svg/>"))
	assert.Equal(t, []string{"image/svg+xml"}, rr.Header().Values("Content-Type"))
}
