// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify emits draw-completed events to the notification service.

After ExecuteDraw commits, the orchestrator publishes one Event naming
the group and its participants. The notification service subscribes to
the Redis channel and handles participant outreach (email, chat);
delivery failures are its problem to retry - a committed draw is never
rolled back because a notification did not go out.

Two implementations:

  - RedisNotifier: publishes JSON events on notify.Channel
  - LogNotifier: logs the event; used when no REDIS_URL is configured
*/
package notify
