package registry

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, svc *Service, pkgPath, path, src string) *ast.File {
	t.Helper()
	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	require.NoError(t, err)
	require.NoError(t, svc.CollectAstFile(fset, pkgPath, path, astFile, domain.ParseAll))
	return astFile
}

const eventsSrc = `package events

import "time"

// Level of a reading.
type Level int

const (
	// Low light
	Low Level = iota
	Medium
	High
)

// LightMeasured is emitted by a streetlight.
type LightMeasured struct {
	Lumens int
	At     time.Time
	Level  Level
}

// Lights is the API.
// @AsyncAPI
type Lights struct{}

// OnMeasured receives readings.
func (l *Lights) OnMeasured(e LightMeasured) {}

// Reset sends a reset.
func (Lights) Reset() {}

func helper() {}
`

func TestNewService(t *testing.T) {
	svc := NewService()

	require.NotNil(t, svc)
	assert.NotNil(t, svc.packages)
	assert.NotNil(t, svc.uniqueDefinitions)
	assert.NotNil(t, svc.files)
	assert.NotNil(t, svc.methods)
}

func TestService_CollectAstFile(t *testing.T) {
	t.Run("collects ast file successfully", func(t *testing.T) {
		svc := NewService()

		collect(t, svc, "example.com/events", "/src/events/events.go", eventsSrc)

		assert.Len(t, svc.files, 1)
		assert.Len(t, svc.packages, 1)
		assert.Equal(t, "events", svc.packages["example.com/events"].Name)
	})

	t.Run("returns without storing if packageDir is empty", func(t *testing.T) {
		svc := NewService()

		collect(t, svc, "", "/src/events/events.go", eventsSrc)

		assert.Empty(t, svc.files)
	})

	t.Run("does not duplicate files", func(t *testing.T) {
		svc := NewService()
		fset := token.NewFileSet()
		astFile, err := parser.ParseFile(fset, "events.go", eventsSrc, parser.ParseComments)
		require.NoError(t, err)

		require.NoError(t, svc.CollectAstFile(fset, "example.com/events", "/src/events.go", astFile, domain.ParseAll))
		require.NoError(t, svc.CollectAstFile(fset, "example.com/events", "/src/events.go", astFile, domain.ParseAll))

		assert.Len(t, svc.packages["example.com/events"].Files, 1)
	})

	t.Run("rejects nil file", func(t *testing.T) {
		assert.Error(t, NewService().CollectAstFile(token.NewFileSet(), "example.com/x", "x.go", nil, domain.ParseAll))
	})
}

func TestService_ParseTypes(t *testing.T) {
	svc := NewService()
	file := collect(t, svc, "example.com/events", "/src/events/events.go", eventsSrc)

	require.NoError(t, svc.ParseTypes())

	t.Run("registers types by qualified name", func(t *testing.T) {
		def := svc.FindTypeSpec("events.LightMeasured", nil)
		require.NotNil(t, def)
		assert.Equal(t, "example.com/events.LightMeasured", def.FullPath())
		require.NotNil(t, def.Doc)
		assert.Contains(t, def.Doc.Text(), "emitted by a streetlight")
	})

	t.Run("finds types as written in a file", func(t *testing.T) {
		assert.NotNil(t, svc.FindTypeSpec("LightMeasured", file))
		assert.Nil(t, svc.FindTypeSpec("string", file))
		assert.Nil(t, svc.FindTypeSpec("Missing", file))
	})

	t.Run("indexes methods by receiver", func(t *testing.T) {
		methods := svc.MethodsOf(svc.FindTypeSpec("events.Lights", nil))
		require.Len(t, methods, 2)
		assert.Equal(t, "OnMeasured", methods[0].Name())
		assert.Equal(t, "Reset", methods[1].Name())
		assert.Empty(t, svc.MethodsOf(svc.FindTypeSpec("events.LightMeasured", nil)))
	})

	t.Run("collects enums with implicit repetition", func(t *testing.T) {
		level := svc.FindTypeSpec("events.Level", nil)
		require.NotNil(t, level)
		require.Len(t, level.Enums, 3)
		assert.Equal(t, domain.EnumValue{Key: "Low", Value: 0, Comment: "Low light"}, level.Enums[0])
		assert.Equal(t, 2, level.Enums[2].Value)
		assert.Equal(t, "High", level.Enums[2].Key)
	})

	t.Run("lists types deterministically", func(t *testing.T) {
		var names []string
		for _, def := range svc.Types() {
			names = append(names, def.Name())
		}
		assert.Equal(t, []string{"Level", "LightMeasured", "Lights"}, names)
	})
}

func TestService_FindTypeSpecAcrossPackages(t *testing.T) {
	svc := NewService()
	collect(t, svc, "example.com/a/model", "/src/a/model/m.go", "package model\n\ntype Event struct{}\n")
	collect(t, svc, "example.com/b/model", "/src/b/model/m.go", "package model\n\ntype Event struct{}\n")
	user := collect(t, svc, "example.com/app", "/src/app/app.go", `package app

import (
	"example.com/a/model"
	other "example.com/b/model"
)

type API struct{}

func (API) A(e model.Event) {}
func (API) B(e other.Event) {}
`)
	require.NoError(t, svc.ParseTypes())

	t.Run("ambiguous package names are keyed by path", func(t *testing.T) {
		assert.Nil(t, svc.FindTypeSpec("model.Event", nil))
		assert.NotNil(t, svc.FindTypeSpec("example_com_a_model.Event", nil))
		assert.NotNil(t, svc.FindTypeSpec("example_com_b_model.Event", nil))
	})

	t.Run("imports disambiguate lookups", func(t *testing.T) {
		a := svc.FindTypeSpec("model.Event", user)
		require.NotNil(t, a)
		assert.Equal(t, "example.com/a/model", a.PkgPath)

		b := svc.FindTypeSpec("other.Event", user)
		require.NotNil(t, b)
		assert.Equal(t, "example.com/b/model", b.PkgPath)
	})
}

func TestService_RangeFiles(t *testing.T) {
	svc := NewService()
	collect(t, svc, "example.com/b", "/src/b.go", "package b")
	collect(t, svc, "example.com/a", "/src/a.go", "package a")
	collect(t, svc, "vendor/example.com/v", "/src/vendor/v.go", "package v")

	var paths []string
	require.NoError(t, svc.RangeFiles(func(info *domain.AstFileInfo) error {
		paths = append(paths, info.Path)
		return nil
	}))

	assert.Equal(t, []string{"/src/a.go", "/src/b.go"}, paths)
}

func TestService_CheckTypeSpec(t *testing.T) {
	svc := NewService()
	collect(t, svc, "example.com/events", "/src/events/events.go", eventsSrc)
	require.NoError(t, svc.ParseTypes())

	assert.False(t, svc.CheckTypeSpec(nil))
	assert.False(t, svc.CheckTypeSpec(svc.FindTypeSpec("events.LightMeasured", nil)))
}
