package jetstream_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-registry/internal/logger"
	"github.com/feral-file/ff-nft-registry/internal/mocks"
	"github.com/feral-file/ff-nft-registry/internal/providers/jetstream"
	"github.com/feral-file/ff-nft-registry/internal/store"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var testConfig = jetstream.Config{
	URL:             "nats://localhost:4222",
	StreamName:      "REGISTRY",
	MaxReconnects:   3,
	ReconnectWait:   time.Second,
	ConnectionName:  "registry-test",
	DuplicateWindow: 2 * time.Minute,
}

type publisherMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupPublisherMocks(t *testing.T) *publisherMocks {
	ctrl := gomock.NewController(t)
	return &publisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func (m *publisherMocks) expectConnect() {
	m.natsJS.EXPECT().
		Connect(testConfig.URL, gomock.Any()).
		Return(m.conn, m.js, nil)
	m.js.EXPECT().
		CreateOrUpdateStream(gomock.Any(), natsjs.StreamConfig{
			Name:       "REGISTRY",
			Subjects:   []string{"registry.events.>", "registry.refunds.>"},
			Duplicates: 2 * time.Minute,
		}).
		Return(nil)
	m.conn.EXPECT().ConnectedUrl().Return(testConfig.URL).AnyTimes()
}

func TestNewPublisher(t *testing.T) {
	m := setupPublisherMocks(t)
	defer m.ctrl.Finish()
	m.expectConnect()

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, m.natsJS)
	require.NoError(t, err)
	assert.NotNil(t, pub)
}

func TestNewPublisher_ConnectError(t *testing.T) {
	m := setupPublisherMocks(t)
	defer m.ctrl.Finish()

	m.natsJS.EXPECT().
		Connect(testConfig.URL, gomock.Any()).
		Return(nil, nil, errors.New("connection refused"))

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, m.natsJS)
	require.Error(t, err)
	assert.Nil(t, pub)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewPublisher_StreamError(t *testing.T) {
	m := setupPublisherMocks(t)
	defer m.ctrl.Finish()

	m.natsJS.EXPECT().
		Connect(testConfig.URL, gomock.Any()).
		Return(m.conn, m.js, nil)
	m.js.EXPECT().
		CreateOrUpdateStream(gomock.Any(), gomock.Any()).
		Return(errors.New("insufficient resources"))
	m.conn.EXPECT().Close()

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, m.natsJS)
	require.Error(t, err)
	assert.Nil(t, pub)
	assert.Contains(t, err.Error(), "REGISTRY")
}

func TestPublish(t *testing.T) {
	m := setupPublisherMocks(t)
	defer m.ctrl.Finish()
	m.expectConnect()

	ctx := context.Background()
	pub, err := jetstream.NewPublisher(ctx, testConfig, m.natsJS)
	require.NoError(t, err)

	msg := &store.OutboxMessage{
		Seq:     7,
		ID:      "01JABCDEF0000000000000000",
		Kind:    store.OutboxKindEvent,
		Subject: "registry.events.nft_mint",
		Payload: []byte(`{"event":"nft_mint"}`),
	}

	m.js.EXPECT().
		Publish(ctx, "registry.events.nft_mint", []byte(`{"event":"nft_mint"}`), gomock.Any()).
		Return(&natsjs.PubAck{Stream: "REGISTRY", Sequence: 1}, nil)
	require.NoError(t, pub.Publish(ctx, msg))

	m.js.EXPECT().
		Publish(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&natsjs.PubAck{Stream: "REGISTRY", Sequence: 1, Duplicate: true}, nil)
	require.NoError(t, pub.Publish(ctx, msg))

	m.js.EXPECT().
		Publish(ctx, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("timeout"))
	err = pub.Publish(ctx, msg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), msg.ID)
}

func TestClose(t *testing.T) {
	m := setupPublisherMocks(t)
	defer m.ctrl.Finish()
	m.expectConnect()

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, m.natsJS)
	require.NoError(t, err)

	m.conn.EXPECT().Drain().Return(errors.New("already closed"))
	m.conn.EXPECT().Close()
	pub.Close()
}
