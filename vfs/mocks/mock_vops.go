// Hand-written in MockGen's output shape, not generated.
// Source: github.com/aligator/kfat/vfs (interface VOps, plus DirLister's Readdir)

// Package mocks hand-authors, in mockgen's documented output shape, the
// generated file the teacher's own go:generate pipeline would have
// produced (file_test.go's NewMockfatFileFs, absent from the retrieval
// snapshot). MockVOps lets the syscall package's tests inject EFAULT- or
// short-transfer-triggering filesystem behavior without a real FAT image.
package mocks

import (
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	vfs "github.com/aligator/kfat/vfs"
)

// MockVOps is a mock of the VOps interface.
type MockVOps struct {
	ctrl     *gomock.Controller
	recorder *MockVOpsMockRecorder
}

// MockVOpsMockRecorder is the mock recorder for MockVOps.
type MockVOpsMockRecorder struct {
	mock *MockVOps
}

// NewMockVOps creates a new mock instance.
func NewMockVOps(ctrl *gomock.Controller) *MockVOps {
	mock := &MockVOps{ctrl: ctrl}
	mock.recorder = &MockVOpsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockVOps) EXPECT() *MockVOpsMockRecorder {
	return m.recorder
}

// Open mocks base method.
func (m *MockVOps) Open(path string) (*vfs.Handle, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Open", path)
	ret0, _ := ret[0].(*vfs.Handle)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Open indicates an expected call of Open.
func (mr *MockVOpsMockRecorder) Open(path interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Open", reflect.TypeOf((*MockVOps)(nil).Open), path)
}

// Close mocks base method.
func (m *MockVOps) Close(h *vfs.Handle) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close", h)
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockVOpsMockRecorder) Close(h interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockVOps)(nil).Close), h)
}

// Read mocks base method.
func (m *MockVOps) Read(h *vfs.Handle, dest []byte) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Read", h, dest)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Read indicates an expected call of Read.
func (mr *MockVOpsMockRecorder) Read(h, dest interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Read", reflect.TypeOf((*MockVOps)(nil).Read), h, dest)
}

// Write mocks base method.
func (m *MockVOps) Write(h *vfs.Handle, src []byte) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Write", h, src)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Write indicates an expected call of Write.
func (mr *MockVOpsMockRecorder) Write(h, src interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Write", reflect.TypeOf((*MockVOps)(nil).Write), h, src)
}

// Ioctl mocks base method.
func (m *MockVOps) Ioctl(h *vfs.Handle, request int, arg uintptr) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Ioctl", h, request, arg)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Ioctl indicates an expected call of Ioctl.
func (mr *MockVOpsMockRecorder) Ioctl(h, request, arg interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Ioctl", reflect.TypeOf((*MockVOps)(nil).Ioctl), h, request, arg)
}

// Stat mocks base method.
func (m *MockVOps) Stat(path string) (vfs.Stat, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Stat", path)
	ret0, _ := ret[0].(vfs.Stat)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Stat indicates an expected call of Stat.
func (mr *MockVOpsMockRecorder) Stat(path interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Stat", reflect.TypeOf((*MockVOps)(nil).Stat), path)
}

// Readdir mocks base method, implementing vfs.DirLister so MockVOps can
// also stand in for a lister-capable backend.
func (m *MockVOps) Readdir(h *vfs.Handle) ([]vfs.Stat, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Readdir", h)
	ret0, _ := ret[0].([]vfs.Stat)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Readdir indicates an expected call of Readdir.
func (mr *MockVOpsMockRecorder) Readdir(h interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Readdir", reflect.TypeOf((*MockVOps)(nil).Readdir), h)
}
