package sqlinline

const campaignCols = `id, name, description, target_amount::text, current_amount::text,
       start_date, end_date, category, status, banner_path, created_by,
       approved_by, approved_at, rejection_reason, created_at, updated_at`

const QInsertCampaign = `--sql f95c603f-9f37-4e4e-84a9-abf5066aa59d
insert into campaigns (id, name, description, target_amount, current_amount, start_date, end_date,
                       category, status, banner_path, created_by, created_at, updated_at)
values ($1::uuid, $2, $3, $4::numeric, 0, $5::date, $6::date, $7, $8, $9, $10, now(), now());
`

const QSelectCampaign = `--sql b0247bc6-44e7-49d6-aad5-f76efec60971
select ` + campaignCols + `
from campaigns
where id = $1::uuid;
`

const QListCampaigns = `--sql a1942cda-db10-479b-9abc-76cc67a82e02
select ` + campaignCols + `
from campaigns
where ($1::text = '' or status = $1::text)
order by created_at desc;
`

const QApproveCampaign = `--sql 9a9993f5-fc33-4c3d-a64a-bc1c7b8423be
update campaigns
set status = 'active', approved_by = $2, approved_at = $3, rejection_reason = '', updated_at = now()
where id = $1::uuid and status = 'pending_approval'
returning ` + campaignCols + `;
`

const QRejectCampaign = `--sql 4689434f-77d9-4c17-8722-00a569d1bde1
update campaigns
set status = 'rejected', rejection_reason = $2, approved_by = null, approved_at = null, updated_at = now()
where id = $1::uuid and status = 'pending_approval'
returning ` + campaignCols + `;
`

const QTransitionCampaign = `--sql 9253dbc8-f141-4e67-8226-715606236af3
update campaigns
set status = $2, updated_at = now()
where id = $1::uuid and status = any($3::text[])
returning ` + campaignCols + `;
`

const QOverrideCampaignStatus = `--sql 48abe9cb-0c5e-4147-bc00-15161e10e6f2
update campaigns
set status = $2, updated_at = now()
where id = $1::uuid
returning ` + campaignCols + `;
`
