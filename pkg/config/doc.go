// Package config declares what the monitor samples and where it publishes.
//
// A YAML file overlays the built-in defaults; fields left out keep their
// default value:
//
//	output_path: /var/www/cortana/stats.json
//	disk_mount: /
//	service_manager: auto   # auto | dbus | systemctl
//	concurrency: 1
//	services:
//	  - name: nginx
//	optional_services:
//	  - name: redis
//	apps:
//	  - name: api
//	    port: 8000
//	  - name: health
//	    type: http
//	    url: http://127.0.0.1:8000/healthz
//	websites:
//	  - name: blog
//	    url: https://example.com
//
// Entries without a type take the default of their list: services are
// systemd units, apps are port checks, websites are http checks.
package config
