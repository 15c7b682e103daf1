package policy

import (
	"context"
	"testing"

	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/model"
	"github.com/stretchr/testify/require"
)

// exampleTasks returns four tasks with lengths 1000, 1020, 1040, 1060.
func exampleTasks() []model.Task {
	return []model.Task{
		{ID: 0, Length: 1000, SubmittedAt: 0},
		{ID: 1, Length: 1020, SubmittedAt: 1},
		{ID: 2, Length: 1040, SubmittedAt: 2},
		{ID: 3, Length: 1060, SubmittedAt: 3},
	}
}

// exampleResources returns two single core resources with rates 1000 and 1010.
func exampleResources() []model.Resource {
	return []model.Resource{
		{ID: 0, Rate: 1000, Cores: 1},
		{ID: 1, Rate: 1010, Cores: 1},
	}
}

// genTasks returns n tasks whose lengths follow a deterministic but unordered pattern.
func genTasks(n int) []model.Task {
	tasks := make([]model.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, model.Task{
			ID:            i,
			Length:        float64(1000 + (i*37)%11*20),
			PriorityLevel: 1 + (i*7)%10,
			SubmittedAt:   int64(i),
		})
	}
	return tasks
}

func genResources(m int) []model.Resource {
	res := make([]model.Resource, 0, m)
	for i := 0; i < m; i++ {
		res = append(res, model.Resource{ID: 100 + i, Rate: float64(1000 + i*10), Cores: 1 + i%2})
	}
	return res
}

func seeded(seed int64) config.Policy {
	return config.DefaultPolicyConfig().WithSeed(seed)
}

func mustAssign(t *testing.T, p Policy, tasks []model.Task, res []model.Resource, conf config.Policy) *model.Plan {
	t.Helper()
	require.NoError(t, p.Initialize(tasks, res, conf))
	plan, err := p.Assign(context.Background())
	require.NoError(t, err)
	require.NoError(t, plan.Validate(tasks, res))
	return plan
}

func resourceIDs(plan *model.Plan) []int {
	var ids []int
	for _, b := range plan.Bindings {
		ids = append(ids, b.ResourceID)
	}
	return ids
}
