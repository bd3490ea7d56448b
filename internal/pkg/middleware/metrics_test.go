// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsBuilder_Build(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	reg := prometheus.NewRegistry()
	builder := NewMetricsBuilder(reg, "web")
	server := gin.New()
	server.Use(builder.Build())
	server.POST("/promocode/redeem", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req, err := http.NewRequest(http.MethodPost, "/promocode/redeem", nil)
		require.NoError(t, err)
		server.ServeHTTP(httptest.NewRecorder(), req)
	}
	req, err := http.NewRequest(http.MethodPost, "/not-found", nil)
	require.NoError(t, err)
	server.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		builder.counterVec.WithLabelValues(http.MethodPost, "/promocode/redeem", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		builder.counterVec.WithLabelValues(http.MethodPost, "unknown", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(builder.summaryVec))
}
