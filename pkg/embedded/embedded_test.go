package embedded

import (
	"embed"
	"testing"
)

// 测试夹具：本包 data/ 目录下的样例文件
//
//go:embed data
var testFS embed.FS

// TestUninitialized 测试未初始化时所有读取都报错
func TestUninitialized(t *testing.T) {
	initialized = false
	defer func() { initialized = false }()

	if _, err := ReadFile("data/fixture.txt"); err == nil {
		t.Error("ReadFile before Init(): got nil error, want error")
	}
	if _, err := Open("data/fixture.txt"); err == nil {
		t.Error("Open before Init(): got nil error, want error")
	}
	if Exists("data/fixture.txt") {
		t.Error("Exists before Init(): got true, want false")
	}
}

// TestReadFile 测试初始化后读取嵌入文件
func TestReadFile(t *testing.T) {
	Init(testFS)
	defer func() { initialized = false }()

	got, err := ReadFile("data/fixture.txt")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(got) == 0 {
		t.Error("ReadFile(): got empty content")
	}

	// "./" 前缀被接受
	if _, err := ReadFile("./data/fixture.txt"); err != nil {
		t.Errorf("ReadFile(./data/...) error: %v", err)
	}
}

// TestRejectUnknownPrefix 测试非 data/ 前缀被拒绝
func TestRejectUnknownPrefix(t *testing.T) {
	Init(testFS)
	defer func() { initialized = false }()

	if _, err := ReadFile("assets/whatever.png"); err == nil {
		t.Error("ReadFile(assets/...): got nil error, want error")
	}
}

// TestExists 测试存在性检查
func TestExists(t *testing.T) {
	Init(testFS)
	defer func() { initialized = false }()

	if !Exists("data/fixture.txt") {
		t.Error("Exists(fixture): got false, want true")
	}
	if Exists("data/missing.txt") {
		t.Error("Exists(missing): got true, want false")
	}
}
