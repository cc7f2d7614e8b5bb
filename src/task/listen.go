package task

import (
	"context"
	"runtime"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/byteKnight2010/spriteToolKit/src/global"
	"github.com/byteKnight2010/spriteToolKit/src/job"
)

func Listen(ctx global.Context) {
	msgCh, err := ctx.Instances().Rmq.Subscribe(ctx.Config().Rmq.JobQueueName)
	if err != nil {
		logrus.Fatal("failed to listen to jobs: ", err)
	}

	maxProcs := runtime.GOMAXPROCS(0)
	workers := make(chan *taskWorker, maxProcs)
	for i := 0; i < maxProcs; i++ {
		workers <- &taskWorker{
			cb: workers,
		}
	}

	for msg := range msgCh {
		worker := <-workers
		go worker.process(ctx, msg)
	}
}

type taskWorker struct {
	cb chan *taskWorker
}

type RmqResult struct {
	JobID   string     `json:"job_id"`
	Success bool       `json:"success"`
	Files   []job.File `json:"files"`
	Error   string     `json:"error"`
}

func (w *taskWorker) process(ctx global.Context, msg amqp.Delivery) {
	ctx.AddTask(1)
	defer func() {
		ctx.DoneTask()
		w.cb <- w
	}()

	j := job.Job{}

	err := json.Unmarshal(msg.Body, &j)
	if err != nil {
		logrus.Warn("bad job message: ", err)
		return
	}

	applyDefaults(&j)

	lCtx, cancel := context.WithTimeout(ctx, time.Second*time.Duration(ctx.Config().MaxTaskDuration))
	defer cancel()

	task := New(lCtx, j)

	task.Start(ctx)

	logrus.Info("starting new task: ", j.ID)

	for event := range task.Events() {
		event.JobID = j.ID
		event, _ := json.Marshal(event)
		if err := ctx.Instances().Rmq.Publish(ctx.Config().Rmq.UpdateQueueName, "application/json", amqp.Transient, event); err != nil {
			logrus.Warn("failed to send update: ", err)
		}
	}
	<-task.Done()
	if err := task.Failed(); err != nil {
		if err := msg.Reject(false); err != nil {
			logrus.Warn("failed to ack: ", err)
		}
		logrus.Errorf("task failed %s: %s", j.ID, err.Error())
		logrus.Debug(spew.Sdump(j))
	} else {
		if err := msg.Ack(false); err != nil {
			logrus.Warn("failed to ack: ", err)
		}
	}

	errStr := ""
	if task.Failed() != nil {
		errStr = task.Failed().Error()
	}

	resp, _ := json.Marshal(RmqResult{
		JobID:   j.ID,
		Success: task.Failed() == nil,
		Error:   errStr,
		Files:   task.Files(),
	})

	if err := ctx.Instances().Rmq.Publish(ctx.Config().Rmq.ResultQueueName, "application/json", amqp.Persistent, resp); err != nil {
		logrus.Error("failed to send result: ", err)
	}

	logrus.Info("finished task: ", j.ID)
}

// applyDefaults fills whatever the job message leaves unset.
func applyDefaults(j *job.Job) {
	switch j.Op {
	case job.OpSpin:
		if j.Spin == nil {
			j.Spin = &job.SpinSpec{}
		}
		if j.Spin.Frames == 0 {
			j.Spin.Frames = 60
		}
		if j.Spin.DelayMS == 0 {
			j.Spin.DelayMS = 33 // 30 fps
		}
	case job.OpSplit:
		if j.Split == nil {
			j.Split = &job.SplitSpec{}
		}
		if j.Split.Prefix == "" {
			j.Split.Prefix = "frame"
		}
		if j.Split.Padding == 0 {
			j.Split.Padding = 4
		}
	case job.OpGIF:
		if j.Encode == nil {
			j.Encode = &job.EncodeSpec{}
		}
		if j.Encode.DelayMS == 0 {
			j.Encode.DelayMS = 83 // 12 fps
		}
	case job.OpSheet:
		if j.Spin != nil {
			if j.Spin.Frames == 0 {
				j.Spin.Frames = 60
			}
		} else if j.Encode == nil {
			j.Encode = &job.EncodeSpec{}
		}
	}
}
