package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	// 验证所有指标已创建
	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if StockOperationsTotal == nil {
		t.Error("StockOperationsTotal未初始化")
	}
	if BulkImportRowsTotal == nil {
		t.Error("BulkImportRowsTotal未初始化")
	}
	if BulkImportDuration == nil {
		t.Error("BulkImportDuration未初始化")
	}
	if LeftoverCacheRequests == nil {
		t.Error("LeftoverCacheRequests未初始化")
	}

	// 重复初始化不应panic（promauto重复注册会panic，这里靠initialized标记保护）
	InitMetrics()
}

// TestStockOperationsCounter 测试库存操作计数
func TestStockOperationsCounter(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"op": "add", "result": "success"}
	before := getCounterVecValue(t, StockOperationsTotal, labels)

	IncCounterVec(StockOperationsTotal, labels)
	IncCounterVec(StockOperationsTotal, labels)

	after := getCounterVecValue(t, StockOperationsTotal, labels)
	if after-before != 2 {
		t.Errorf("Counter增量错误: expected=2, got=%f", after-before)
	}

	// 不同标签互不影响
	rejected := map[string]string{"op": "remove", "result": "rejected"}
	IncCounterVec(StockOperationsTotal, rejected)
	if v := getCounterVecValue(t, StockOperationsTotal, rejected); v != 1 {
		t.Errorf("CounterVec标签隔离错误: expected=1, got=%f", v)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()

	initial := getGaugeValue(t, HTTPRequestsInProgress)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	value := getGaugeValue(t, HTTPRequestsInProgress)
	if value-initial != 1 {
		t.Errorf("Gauge增量错误: expected=1, got=%f", value-initial)
	}
}

// TestCircuitBreakerStateGauge 测试熔断器状态指标
func TestCircuitBreakerStateGauge(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "leftover-cache"}, 1) // OPEN

	value := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "leftover-cache"})
	if value != 1 {
		t.Errorf("GaugeVec值错误: expected=1, got=%f", value)
	}
}

// =========================================
// 测试辅助函数：读取指标当前值
// =========================================

func getCounterVecValue(t *testing.T, vec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	var m dto.Metric
	c, err := vec.GetMetricWith(labels)
	if err != nil {
		t.Fatalf("获取Counter失败: %v", err)
	}
	if err := c.Write(&m); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return m.GetCounter().GetValue()
}

func getGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return m.GetGauge().GetValue()
}

func getGaugeVecValue(t *testing.T, vec *prometheus.GaugeVec, labels map[string]string) float64 {
	t.Helper()
	var m dto.Metric
	g, err := vec.GetMetricWith(labels)
	if err != nil {
		t.Fatalf("获取Gauge失败: %v", err)
	}
	if err := g.Write(&m); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return m.GetGauge().GetValue()
}
