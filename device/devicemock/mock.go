// Package devicemock provides a golang/mock-style mock of
// device.Legalizer, mirroring how api/driver_internal_test.go mocks
// sim.Port in the teacher.
package devicemock

import (
	"reflect"

	gomock "github.com/golang/mock/gomock"
	"github.com/sarchlab/zplace/device"
	"github.com/sarchlab/zplace/geometry"
	"github.com/sarchlab/zplace/netlist"
)

// MockLegalizer is a mock of device.Legalizer.
type MockLegalizer struct {
	ctrl     *gomock.Controller
	recorder *MockLegalizerMockRecorder
}

// MockLegalizerMockRecorder records expected calls on MockLegalizer.
type MockLegalizerMockRecorder struct {
	mock *MockLegalizer
}

// NewMockLegalizer returns a new mock bound to ctrl.
func NewMockLegalizer(ctrl *gomock.Controller) *MockLegalizer {
	m := &MockLegalizer{ctrl: ctrl}
	m.recorder = &MockLegalizerMockRecorder{mock: m}
	return m
}

// EXPECT returns the recorder used to set up expectations.
func (m *MockLegalizer) EXPECT() *MockLegalizerMockRecorder {
	return m.recorder
}

func (m *MockLegalizer) Size() (int, int) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Size")
	return ret[0].(int), ret[1].(int)
}

func (mr *MockLegalizerMockRecorder) Size() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Size", reflect.TypeOf((*MockLegalizer)(nil).Size))
}

func (m *MockLegalizer) Margin() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Margin")
	return ret[0].(int)
}

func (mr *MockLegalizerMockRecorder) Margin() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Margin", reflect.TypeOf((*MockLegalizer)(nil).Margin))
}

func (m *MockLegalizer) ClbType() device.CellType {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClbType")
	return ret[0].(device.CellType)
}

func (mr *MockLegalizerMockRecorder) ClbType() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClbType", reflect.TypeOf((*MockLegalizer)(nil).ClbType))
}

func (m *MockLegalizer) CellTypeAt(p geometry.Position) device.CellType {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CellTypeAt", p)
	return ret[0].(device.CellType)
}

func (mr *MockLegalizerMockRecorder) CellTypeAt(p interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CellTypeAt", reflect.TypeOf((*MockLegalizer)(nil).CellTypeAt), p)
}

func (m *MockLegalizer) IsCellLegal(p geometry.Position, requiredType device.CellType) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsCellLegal", p, requiredType)
	return ret[0].(bool)
}

func (mr *MockLegalizerMockRecorder) IsCellLegal(p, requiredType interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsCellLegal", reflect.TypeOf((*MockLegalizer)(nil).IsCellLegal), p, requiredType)
}

func (m *MockLegalizer) IsFoldable(srcPort, dstPort netlist.Port) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsFoldable", srcPort, dstPort)
	return ret[0].(bool)
}

func (mr *MockLegalizerMockRecorder) IsFoldable(srcPort, dstPort interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsFoldable", reflect.TypeOf((*MockLegalizer)(nil).IsFoldable), srcPort, dstPort)
}

var _ device.Legalizer = (*MockLegalizer)(nil)
