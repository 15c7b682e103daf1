package sim

import (
	"context"
	"testing"

	"github.com/go-test/deep"
	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlan(bindings ...model.Binding) *model.Plan {
	p := model.NewPlan("test", 0, len(bindings))
	for _, b := range bindings {
		p.Bind(b.TaskID, b.ResourceID)
	}
	return p
}

func TestExecuteSingleCoreQueues(t *testing.T) {
	tasks := []model.Task{
		{ID: 0, Length: 100},
		{ID: 1, Length: 200},
		{ID: 2, Length: 100},
	}
	resources := []model.Resource{
		{ID: 0, Rate: 10, Cores: 1},
		{ID: 1, Rate: 100, Cores: 1},
	}
	plan := newPlan(
		model.Binding{TaskID: 0, ResourceID: 0},
		model.Binding{TaskID: 1, ResourceID: 1},
		model.Binding{TaskID: 2, ResourceID: 0},
	)

	e := NewExecutor(logger.NewLogger("test", logger.DebugConfig()))
	out, err := e.Execute(context.Background(), plan, tasks, resources)
	require.NoError(t, err)

	expected := []model.Completion{
		{TaskID: 0, ResourceID: 0, Start: 0, Finish: 10},
		{TaskID: 1, ResourceID: 1, Start: 0, Finish: 2},
		{TaskID: 2, ResourceID: 0, Start: 10, Finish: 20},
	}
	if diff := deep.Equal(out, expected); diff != nil {
		t.Error(diff)
	}
}

func TestExecuteMultiCore(t *testing.T) {
	tasks := []model.Task{
		{ID: 0, Length: 100},
		{ID: 1, Length: 50},
		{ID: 2, Length: 100},
	}
	resources := []model.Resource{{ID: 7, Rate: 10, Cores: 2}}
	plan := newPlan(
		model.Binding{TaskID: 0, ResourceID: 7},
		model.Binding{TaskID: 1, ResourceID: 7},
		model.Binding{TaskID: 2, ResourceID: 7},
	)

	out, err := NewExecutor(nil).Execute(context.Background(), plan, tasks, resources)
	require.NoError(t, err)

	// Task 2 waits for the core freed by task 1.
	assert.Equal(t, 0.0, out[0].Start)
	assert.Equal(t, 0.0, out[1].Start)
	assert.Equal(t, 5.0, out[2].Start)
	assert.Equal(t, 15.0, out[2].Finish)
	assert.Equal(t, 10.0, out[2].Elapsed())
}

func TestExecuteInvalidPlan(t *testing.T) {
	tasks := []model.Task{{ID: 0, Length: 100}, {ID: 1, Length: 100}}
	resources := []model.Resource{{ID: 0, Rate: 10, Cores: 1}}
	plan := newPlan(model.Binding{TaskID: 0, ResourceID: 3})

	_, err := NewExecutor(nil).Execute(context.Background(), plan, tasks, resources)
	assert.Error(t, err)
}

func TestExecuteCanceled(t *testing.T) {
	tasks := []model.Task{{ID: 0, Length: 100}}
	resources := []model.Resource{{ID: 0, Rate: 10, Cores: 1}}
	plan := newPlan(model.Binding{TaskID: 0, ResourceID: 0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExecutor(nil).Execute(ctx, plan, tasks, resources)
	assert.ErrorIs(t, err, context.Canceled)
}
