/*
 * Copyright 2024 The Hostmux Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package listener provides the Hostmux net.Listener implementation and the
// ListenerGroup that manages the server's named listeners
package listener

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hostmux/hostmux/pkg/errors"
	"github.com/hostmux/hostmux/pkg/observability/logging"
	"github.com/hostmux/hostmux/pkg/observability/metrics"
	"github.com/hostmux/hostmux/pkg/observability/tracing"
	ph "github.com/hostmux/hostmux/pkg/proxy/handlers"

	"golang.org/x/net/netutil"
)

// Listener is the Hostmux net.Listener implementation
type Listener struct {
	net.Listener
	tlsConfig    *tls.Config
	routeSwapper *ph.SwitchHandler
	server       *http.Server
	exitOnError  bool
}

type observedConnection struct {
	*net.TCPConn
}

func (o *observedConnection) Close() error {
	err := o.TCPConn.Close()
	metrics.ProxyActiveConnections.Dec()
	metrics.ProxyConnectionClosed.Inc()
	return err
}

// Accept implements Listener.Accept
func (l *Listener) Accept() (net.Conn, error) {

	metrics.ProxyConnectionRequested.Inc()

	c, err := l.Listener.Accept()
	if err != nil {
		metrics.ProxyConnectionFailed.Inc()
		return c, err
	}

	metrics.ProxyActiveConnections.Inc()
	metrics.ProxyConnectionAccepted.Inc()

	// this is necessary for HTTP/2 to work
	if t, ok := c.(*net.TCPConn); ok {
		return &observedConnection{t}, nil
	}

	return c, nil
}

// RouteSwapper returns the RouteSwapper reference from the Listener
func (l *Listener) RouteSwapper() *ph.SwitchHandler {
	return l.routeSwapper
}

// ListenerGroup is a collection of listeners
type ListenerGroup struct {
	members       map[string]*Listener
	listenersLock sync.Mutex
}

// NewListenerGroup returns a new ListenerGroup
func NewListenerGroup() *ListenerGroup {
	return &ListenerGroup{
		members: make(map[string]*Listener),
	}
}

// NewListener creates a new network listener which obeys to the configuration
// max connection limit and monitors connections with prometheus metrics
//
// The way this works is by creating a listener and wrapping it with a
// netutil.LimitListener to set a limit.
//
// This limiter will simply block waiting for resources to become available
// whenever clients go above the limit.
func NewListener(listenAddress string, listenPort, connectionsLimit int,
	tlsConfig *tls.Config, log *logging.Logger) (net.Listener, error) {

	var listener net.Listener
	var err error

	listenerType := "http"

	if tlsConfig != nil {
		listenerType = "https"
		listener, err = tls.Listen("tcp",
			fmt.Sprintf("%s:%d", listenAddress, listenPort), tlsConfig)
	} else {
		listener, err = net.Listen("tcp",
			fmt.Sprintf("%s:%d", listenAddress, listenPort))
	}
	if err != nil {
		// so we can exit one level above, this usually means that the port is in use
		return nil, err
	}

	if connectionsLimit > 0 {
		listener = netutil.LimitListener(listener, connectionsLimit)
		metrics.ProxyMaxConnections.Set(float64(connectionsLimit))
	}

	if log != nil {
		log.Debug("starting listener", logging.Pairs{
			"connectionsLimit": connectionsLimit,
			"scheme":           listenerType,
			"address":          listenAddress,
			"port":             listenPort,
		})
	}

	return listener, nil
}

// Get returns the named listener if it exists
func (lg *ListenerGroup) Get(name string) *Listener {
	lg.listenersLock.Lock()
	l, ok := lg.members[name]
	lg.listenersLock.Unlock()
	if ok {
		return l
	}
	return nil
}

// StartListener starts a new HTTP listener and adds it to the listener group
func (lg *ListenerGroup) StartListener(listenerName, address string, port,
	connectionsLimit int, tlsConfig *tls.Config, router http.Handler,
	wg *sync.WaitGroup, tracer *tracing.Tracer, f func(),
	log *logging.Logger) error {

	if wg != nil {
		defer wg.Done()
	}

	l := &Listener{routeSwapper: ph.NewSwitchHandler(router), exitOnError: f != nil}
	if tlsConfig != nil && len(tlsConfig.Certificates) > 0 {
		l.tlsConfig = tlsConfig
	}

	var err error
	l.Listener, err = NewListener(address, port, connectionsLimit, l.tlsConfig, log)
	if err != nil {
		if log != nil {
			log.Error("http listener startup failed",
				logging.Pairs{"listenerName": listenerName, "detail": err})
		}
		if f != nil {
			f()
		}
		return err
	}
	if log != nil {
		log.Info("http listener starting",
			logging.Pairs{"listenerName": listenerName, "port": port,
				"address": address})
	}

	lg.listenersLock.Lock()
	lg.members[listenerName] = l
	lg.listenersLock.Unlock()

	// flush any pending spans here, where the listener's connections end
	defer func() {
		if err := tracing.Shutdown(context.Background(), tracer); err != nil && log != nil {
			log.Error("tracer shutdown failed", logging.Pairs{"detail": err.Error()})
		}
	}()

	svr := &http.Server{
		Handler:   l.routeSwapper,
		TLSConfig: l.tlsConfig,
	}
	l.server = svr
	err = svr.Serve(l)
	if err != nil && err != http.ErrServerClosed {
		if log != nil {
			log.Error("http listener stopping",
				logging.Pairs{"listenerName": listenerName, "detail": err})
		}
		if l.exitOnError && f != nil {
			f()
		}
		return err
	}
	return nil
}

// UpdateRouter atomically swaps the router serving the named listener
func (lg *ListenerGroup) UpdateRouter(listenerName string, router http.Handler) error {
	lg.listenersLock.Lock()
	l, ok := lg.members[listenerName]
	lg.listenersLock.Unlock()
	if !ok || l == nil {
		return errors.ErrNoSuchListener
	}
	l.routeSwapper.Update(router)
	return nil
}

// DrainAndClose drains and closes the named listener
func (lg *ListenerGroup) DrainAndClose(listenerName string, drainWait time.Duration) error {
	lg.listenersLock.Lock()
	l, ok := lg.members[listenerName]
	if ok && l != nil {
		l.exitOnError = false
		delete(lg.members, listenerName)
		lg.listenersLock.Unlock()
		if l.Listener == nil {
			return errors.ErrNilListener
		}
		if l.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), drainWait)
			go func() {
				defer cancel()
				l.server.Shutdown(ctx)
			}()
		}
		return nil
	}
	lg.listenersLock.Unlock()
	return errors.ErrNoSuchListener
}

// DrainAndCloseAll drains and closes every listener in the group
func (lg *ListenerGroup) DrainAndCloseAll(drainWait time.Duration) {
	lg.listenersLock.Lock()
	names := make([]string, 0, len(lg.members))
	for name := range lg.members {
		names = append(names, name)
	}
	lg.listenersLock.Unlock()
	for _, name := range names {
		lg.DrainAndClose(name, drainWait)
	}
}
