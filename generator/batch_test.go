package generator

import (
	"context"
	"fmt"
	"testing"

	"github.com/oy3o/objgen/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAllIsolatesFailures(t *testing.T) {
	g := newTestGenerator(t)
	objs := make([]*schema.Object, 0, 20)
	for i := range 20 {
		objs = append(objs, &schema.Object{
			Name:   fmt.Sprintf("Obj%02d", i),
			Fields: []*schema.Field{{Name: "value", Kind: schema.KindU16}},
		})
	}
	objs[7] = &schema.Object{Name: "Broken", Fields: []*schema.Field{{Name: "x", Kind: "nope"}}}
	objs[13] = nil

	results, err := g.GenerateAll(context.Background(), objs)
	require.NoError(t, err)
	require.Len(t, results, len(objs))

	for i, res := range results {
		switch i {
		case 7:
			assert.Equal(t, "Broken", res.Name)
			assert.ErrorIs(t, res.Err, schema.ErrUnknownKind)
			assert.Nil(t, res.Output)
		case 13:
			assert.ErrorIs(t, res.Err, ErrNilObject)
		default:
			require.NoError(t, res.Err)
			assert.Equal(t, objs[i].Name+".h", res.Filename)

			want, err := g.Generate(objs[i])
			require.NoError(t, err)
			assert.Equal(t, want, res.Output, "batch output matches a lone run")
		}
	}

	err = Failed(results)
	assert.ErrorIs(t, err, schema.ErrUnknownKind)
	assert.ErrorIs(t, err, ErrNilObject)
	assert.NoError(t, Failed(results[:7]))
}

func TestGenerateAllHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := newTestGenerator(t).GenerateAll(ctx, []*schema.Object{item()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestGenerateAllEmpty(t *testing.T) {
	results, err := newTestGenerator(t).GenerateAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGenerateAllChecksSchemaSet(t *testing.T) {
	g := newTestGenerator(t)
	first := &schema.Object{Name: "Item", Fields: []*schema.Field{{Name: "id", Kind: schema.KindU32}}}
	second := &schema.Object{Name: "Item", Fields: []*schema.Field{
		{Name: "owner", Kind: schema.KindRef, Ref: "Nowhere"},
	}}
	hub := &schema.Object{Name: "Hub", Fields: []*schema.Field{
		{Name: "spokes", Kind: schema.KindList, Element: &schema.Field{Kind: schema.KindRef, Ref: "Spoke"}},
	}}
	spoke := &schema.Object{Name: "Spoke", Fields: []*schema.Field{{Name: "hub", Kind: schema.KindRef, Ref: "Hub"}}}
	lost := &schema.Object{Name: "Lost", Fields: []*schema.Field{{Name: "target", Kind: schema.KindRef, Ref: "Missing"}}}

	results, err := g.GenerateAll(context.Background(), []*schema.Object{first, second, hub, spoke, lost})
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.ErrorIs(t, results[0].Err, schema.ErrDuplicateObject)
	assert.NotErrorIs(t, results[0].Err, schema.ErrUnresolvedReference)
	assert.Nil(t, results[0].Output)

	assert.ErrorIs(t, results[1].Err, schema.ErrDuplicateObject)
	assert.ErrorIs(t, results[1].Err, schema.ErrUnresolvedReference)
	assert.Nil(t, results[1].Output)

	require.NoError(t, results[2].Err)
	require.NoError(t, results[3].Err)
	assert.NotEmpty(t, results[2].Output)

	assert.ErrorIs(t, results[4].Err, schema.ErrUnresolvedReference)
	assert.Equal(t, "Lost.h", results[4].Filename)

	err = Failed(results)
	assert.ErrorIs(t, err, schema.ErrDuplicateObject)
	assert.ErrorIs(t, err, schema.ErrUnresolvedReference)
}
