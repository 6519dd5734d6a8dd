package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j *recordingJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.log = append(*j.log, "start "+j.name)
	return nil
}

func (j *recordingJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager_StartStop(t *testing.T) {
	var log []string
	jm := NewJobManager(&recordingJob{name: "a", log: &log}, nil, &recordingJob{name: "b", log: &log})

	require.NoError(t, jm.StartAll())
	jm.StopAll()
	jm.StopAll()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	var log []string
	jm := NewJobManager(
		&recordingJob{name: "a", log: &log},
		&recordingJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
	)

	err := jm.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad schedule")
	assert.Equal(t, []string{"start a", "stop a"}, log)
}
