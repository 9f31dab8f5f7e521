package manager

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TamerPlatform/frida-push/internal/config"
	"github.com/TamerPlatform/frida-push/internal/domain"
	"github.com/TamerPlatform/frida-push/internal/resolver"
)

// archProp is the property the architecture decision hangs on.
const archProp = "ro.product.cpu.abi"

type Options struct {
	DeviceName string
	Force      bool
}

// Deployer runs the deploy pipeline: pick a device, work out which server
// build it needs, make sure that build is cached locally, then push and
// start it. Every collaborator is injected so tests run against fakes.
type Deployer struct {
	bridge    domain.Bridge
	fetcher   domain.Fetcher
	cache     domain.Cache
	extractor domain.Extractor
	registry  domain.Registry
	history   domain.History
	cfg       *config.Config
	log       *zap.SugaredLogger
}

func New(
	bridge domain.Bridge,
	fetcher domain.Fetcher,
	cache domain.Cache,
	extractor domain.Extractor,
	registry domain.Registry,
	history domain.History,
	cfg *config.Config,
	log *zap.SugaredLogger,
) *Deployer {

	return &Deployer{
		bridge:    bridge,
		fetcher:   fetcher,
		cache:     cache,
		extractor: extractor,
		registry:  registry,
		history:   history,
		cfg:       cfg,
		log:       log,
	}
}

// Deploy is strictly linear; the first hard error aborts the run. Kill
// and launch on the device are best-effort.
func (d *Deployer) Deploy(ctx context.Context, opts Options) (*domain.PushRecord, error) {
	devices, err := d.bridge.Devices(ctx)
	if err != nil {
		return nil, err
	}

	device, err := domain.SelectDevice(devices, opts.DeviceName)
	if err != nil {
		return nil, err
	}
	if !device.Online() {
		d.log.Warnf("device %s is %s; commands may fail until it is ready", device.Serial, device.State)
	}
	d.log.Infof("using device %s", device.Serial)

	rawABI, err := d.bridge.GetProp(ctx, device.Serial, archProp)
	if err != nil {
		return nil, err
	}

	arch, err := resolver.MapArch(rawABI)
	if err != nil {
		return nil, err
	}
	d.log.Infof("device architecture: %s (%s)", arch, rawABI)

	version, err := d.serverVersion(ctx, device.Serial)
	if err != nil {
		return nil, err
	}

	asset := resolver.Resolve(d.cfg.ReleaseHost, d.cfg.ServerName, version, arch)

	if err := d.ensureCached(ctx, asset, opts.Force); err != nil {
		return nil, err
	}

	d.log.Infof("pushing %s to %s", asset.Filename, d.cfg.RemotePath)
	if err := d.bridge.Push(ctx, device.Serial, d.cache.PathFor(asset), d.cfg.RemotePath); err != nil {
		return nil, err
	}

	if _, err := d.bridge.Shell(ctx, device.Serial, "chmod 0755 "+d.cfg.RemotePath); err != nil {
		return nil, fmt.Errorf("marking %s executable: %w", d.cfg.RemotePath, err)
	}

	d.log.Infof("killing any running %s", d.cfg.ServerName)
	if _, err := d.bridge.Shell(ctx, device.Serial, "killall "+d.cfg.ServerName); err != nil {
		// Nothing to kill is the common case, not a failure.
		d.log.Debugf("killall: %v", err)
	}

	d.log.Infof("starting %s on device", d.cfg.ServerName)
	launch := fmt.Sprintf("nohup %s >/dev/null 2>&1 &", d.cfg.RemotePath)
	if _, err := d.bridge.Shell(ctx, device.Serial, launch); err != nil {
		d.log.Warnf("could not confirm %s started: %v", d.cfg.ServerName, err)
	}

	rec := &domain.PushRecord{
		Serial:   device.Serial,
		Version:  version,
		Arch:     arch,
		PID:      d.serverPID(ctx, device.Serial),
		PushedAt: time.Now(),
	}

	if d.history != nil {
		if err := d.history.Record(rec); err != nil {
			d.log.Warnf("could not record push history: %v", err)
		}
	}

	return rec, nil
}

// serverVersion decides which build to deploy: the version an already
// running server reports, else the pinned default, else the newest
// published release.
func (d *Deployer) serverVersion(ctx context.Context, serial string) (string, error) {
	out, err := d.bridge.Shell(ctx, serial, d.cfg.RemotePath+" --version")
	if err == nil {
		if v := strings.TrimSpace(out); resolver.ValidVersion(v) {
			d.log.Infof("device reports %s %s", d.cfg.ServerName, v)
			return v, nil
		}
	}

	if d.cfg.DefaultVersion != "" {
		d.log.Infof("no running %s, using configured version %s", d.cfg.ServerName, d.cfg.DefaultVersion)
		return d.cfg.DefaultVersion, nil
	}

	d.log.Infof("no running %s and no pinned version, asking release registry", d.cfg.ServerName)
	version, err := d.registry.Latest(ctx)
	if err != nil {
		return "", fmt.Errorf("picking server version: %w", err)
	}
	d.log.Infof("latest published release is %s", version)

	return version, nil
}

func (d *Deployer) ensureCached(ctx context.Context, asset domain.Asset, force bool) error {
	if !force && d.cache.Has(asset) {
		d.log.Infof("using %s from cache", asset.Filename)
		return nil
	}

	d.log.Infof("downloading %s", asset.DownloadURL)
	result := d.fetcher.Fetch(ctx, asset)
	if result.Error != nil {
		return result.Error
	}
	defer os.Remove(result.Path)

	extracted := result.Path + ".bin"
	if err := d.extractor.Extract(result.Path, extracted); err != nil {
		return err
	}

	if _, err := d.cache.Store(asset, extracted); err != nil {
		os.Remove(extracted)
		return err
	}

	return nil
}

// serverPID asks the device for the new server's PID. Best-effort; 0
// means the PID could not be read.
func (d *Deployer) serverPID(ctx context.Context, serial string) int {
	out, err := d.bridge.Shell(ctx, serial, "pidof "+d.cfg.ServerName)
	if err != nil {
		return 0
	}

	fields := strings.Fields(out)
	if len(fields) == 0 {
		return 0
	}

	pid, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}

	return pid
}
